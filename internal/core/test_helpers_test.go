package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"
)

var errFakeClosed = errors.New("fake conn closed")

type fakeConn struct {
	inbound   chan []byte
	readErr   chan error
	closed    chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	writes [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan []byte, 16),
		readErr: make(chan error, 1),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) Write(_ context.Context, v any) error {
	select {
	case <-c.closed:
		return errFakeClosed
	default:
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.writes = append(c.writes, raw)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Read(ctx context.Context) ([]byte, error) {
	select {
	case raw := <-c.inbound:
		return raw, nil
	case err := <-c.readErr:
		return nil, err
	case <-c.closed:
		return nil, errFakeClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) push(raw string) {
	c.inbound <- []byte(raw)
}

// stuckConn never returns from Read until released, even after Close.
type stuckConn struct {
	release chan struct{}
}

func (c *stuckConn) Write(context.Context, any) error { return nil }

func (c *stuckConn) Read(context.Context) ([]byte, error) {
	<-c.release
	return nil, errFakeClosed
}

func (c *stuckConn) Close() error { return nil }

func (c *fakeConn) written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	for i, w := range c.writes {
		out[i] = string(w)
	}
	return out
}

type fakeDialer struct {
	conn   *fakeConn
	err    error
	url    string
	header http.Header
}

func (d *fakeDialer) Dial(_ context.Context, url string, header http.Header) (Conn, error) {
	d.url = url
	d.header = header
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

// connectedSession returns a session joined to "lobby" over a fake connection.
func connectedSession(t *testing.T) (*Session, *fakeConn) {
	t.Helper()

	conn := newFakeConn()
	s := NewSession(SessionConfig{Channel: "lobby"}, &fakeDialer{conn: conn}, nil)
	if err := s.Connect(context.Background(), "tester"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Leave(context.Background())
	})
	return s, conn
}

// recordEvents forwards every event of the given kinds to the returned channel.
func recordEvents(s *Session, kinds ...EventKind) <-chan Event {
	ch := make(chan Event, 32)
	for _, kind := range kinds {
		s.On(kind, func(_ context.Context, ev Event) error {
			ch <- ev
			return nil
		})
	}
	return ch
}

func mustEvent(t *testing.T, ch <-chan Event, kind EventKind) Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event %q not received", kind)
			return Event{}
		}
	}
}

func mustStop(t *testing.T, s *Session) error {
	t.Helper()

	select {
	case <-s.Done():
		return s.Err()
	case <-time.After(2 * time.Second):
		t.Fatal("listen loop did not stop")
		return nil
	}
}
