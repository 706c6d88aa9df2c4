// Package ws implements the session transport over websocket text frames.
package ws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/hackchat-bot/internal/core"
)

const defaultReadLimit = 1 << 20

// Options tune the dialer. The zero value dials without pacing.
type Options struct {
	// SendRate caps outbound frames per second. Zero disables pacing.
	SendRate float64
	// SendBurst is the limiter burst; values below 1 are treated as 1.
	SendBurst int
	// ReadLimit caps the size of one inbound frame in bytes.
	ReadLimit int64
	// HTTPClient is used for the handshake when set.
	HTTPClient *http.Client
}

// Dialer opens websocket connections for core.Session.
type Dialer struct {
	opts Options
}

// NewDialer builds a Dialer.
func NewDialer(opts Options) *Dialer {
	if opts.SendBurst < 1 {
		opts.SendBurst = 1
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = defaultReadLimit
	}
	return &Dialer{opts: opts}
}

// Dial implements core.Dialer.
func (d *Dialer) Dial(ctx context.Context, url string, header http.Header) (core.Conn, error) {
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPClient: d.opts.HTTPClient,
		HTTPHeader: header,
	})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	c.SetReadLimit(d.opts.ReadLimit)

	conn := &Conn{c: c}
	if d.opts.SendRate > 0 {
		conn.limiter = rate.NewLimiter(rate.Limit(d.opts.SendRate), d.opts.SendBurst)
	}
	return conn, nil
}

// Conn is a websocket connection carrying one JSON object per text frame.
type Conn struct {
	c       *websocket.Conn
	limiter *rate.Limiter
}

// Write sends v as a JSON text frame, waiting for the send limiter first when pacing is on.
func (c *Conn) Write(ctx context.Context, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait send limiter: %w", err)
		}
	}
	return wsjson.Write(ctx, c.c, v)
}

// Read returns the payload of the next data frame. A normal or going-away
// close from the server is reported as core.ErrClosed.
func (c *Conn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.c.Read(ctx)
	if err != nil {
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return nil, fmt.Errorf("%w: %w", core.ErrClosed, err)
		}
		return nil, err
	}
	return data, nil
}

// Close performs a normal websocket close.
func (c *Conn) Close() error {
	return c.c.Close(websocket.StatusNormalClosure, "bye")
}
