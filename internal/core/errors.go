package core

import (
	"errors"

	"github.com/vovakirdan/hackchat-bot/internal/proto"
)

var (
	// ErrConnection is returned by Connect when the transport cannot be opened.
	ErrConnection = errors.New("connection failed")
	// ErrNotConnected is returned by Send when the session has no open transport.
	ErrNotConnected = errors.New("not connected")
	// ErrAlreadyConnected is returned by Connect on a session that is already joined.
	ErrAlreadyConnected = errors.New("already connected")
	// ErrRateLimited ends the listen loop when the server refuses the join rate.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnknownMember means a frame referenced a userid absent from the roster.
	ErrUnknownMember = errors.New("unknown member")
	// ErrClosed is returned by Conn.Read when the peer closed the connection normally.
	ErrClosed = errors.New("connection closed")
)

// ProtocolError carries the server-provided text of a fatal protocol signal.
type ProtocolError struct {
	Cmd  string
	Text string
	Err  error
}

func (e *ProtocolError) Error() string {
	return e.Err.Error() + ": " + e.Text
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func rateLimited(text string) *ProtocolError {
	return &ProtocolError{Cmd: proto.CmdWarn, Text: text, Err: ErrRateLimited}
}
