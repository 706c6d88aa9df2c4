package core

import (
	"context"
	"net/http"
)

// Conn is an open frame transport. Write and Close may be called from any
// goroutine; Read is only called by the session's listen loop.
type Conn interface {
	// Write encodes v as one JSON frame.
	Write(ctx context.Context, v any) error
	// Read blocks until the next frame arrives and returns it undecoded.
	// A normal close by the peer is reported as ErrClosed.
	Read(ctx context.Context) ([]byte, error)
	Close() error
}

// Dialer opens a Conn to url, sending header with the handshake.
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Conn, error)
}
