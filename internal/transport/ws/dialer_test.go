package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/hackchat-bot/internal/core"
	"github.com/vovakirdan/hackchat-bot/internal/proto"
)

// startFakeServer runs a minimal channel server: it answers a join with a
// roster snapshot and echoes every chat frame back as a message from the joiner.
func startFakeServer(t *testing.T, headers chan<- http.Header) string {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if headers != nil {
			headers <- r.Header.Clone()
		}
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "done")

		ctx := r.Context()
		for {
			var frame map[string]any
			if err := wsjson.Read(ctx, conn, &frame); err != nil {
				return
			}
			switch frame["cmd"] {
			case proto.CmdJoin:
				_ = wsjson.Write(ctx, conn, map[string]any{
					"cmd": proto.CmdOnlineSet,
					"users": []map[string]any{
						{"nick": "alice", "userid": 1, "isme": false},
						{"nick": frame["nick"], "userid": 2, "isme": true},
					},
				})
			case proto.CmdChat:
				_ = wsjson.Write(ctx, conn, map[string]any{
					"cmd":    proto.CmdChat,
					"userid": 2,
					"text":   frame["text"],
				})
			}
		}
	}))
	t.Cleanup(ts.Close)

	return strings.Replace(ts.URL, "http", "ws", 1)
}

func TestSessionOverWebsocket(t *testing.T) {
	headers := make(chan http.Header, 1)
	url := startFakeServer(t, headers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session := core.NewSession(core.SessionConfig{
		Channel: "lobby",
		URL:     url,
		Header:  http.Header{"User-Agent": []string{"HackChat/1.0"}},
	}, NewDialer(Options{}), nil)

	ready := make(chan struct{}, 1)
	messages := make(chan *core.ChatMessage, 1)
	session.On(core.EventReady, func(context.Context, core.Event) error {
		ready <- struct{}{}
		return nil
	})
	session.On(core.EventMessage, func(_ context.Context, ev core.Event) error {
		messages <- ev.Message
		return nil
	})

	if err := session.Connect(ctx, "BlueBot"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	select {
	case h := <-headers:
		if h.Get("User-Agent") != "HackChat/1.0" {
			t.Fatalf("unexpected user agent: %q", h.Get("User-Agent"))
		}
	case <-ctx.Done():
		t.Fatal("server saw no handshake")
	}

	select {
	case <-ready:
	case <-ctx.Done():
		t.Fatal("ready not dispatched")
	}
	if self, ok := session.Self(); !ok || self.Nick != "BlueBot" {
		t.Fatalf("unexpected self: %v %v", self, ok)
	}

	if err := session.Send(ctx, "ping"); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case msg := <-messages:
		if msg.Text != "ping" || msg.Author.ID != 2 {
			t.Fatalf("unexpected echo: %+v", msg)
		}
	case <-ctx.Done():
		t.Fatal("echo not received")
	}

	if err := session.Leave(ctx); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := session.Err(); err != nil {
		t.Fatalf("clean leave reported %v", err)
	}
}

func TestDialFailureIsConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	session := core.NewSession(core.SessionConfig{
		Channel: "lobby",
		URL:     strings.Replace(ts.URL, "http", "ws", 1),
	}, NewDialer(Options{}), nil)

	if err := session.Connect(ctx, "BlueBot"); !errors.Is(err, core.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestWritePacing(t *testing.T) {
	url := startFakeServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := NewDialer(Options{SendRate: 20, SendBurst: 1}).Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := conn.Write(ctx, proto.NewChat("x")); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("writes were not paced: %v", elapsed)
	}
}

func TestServerNormalCloseEndsSessionCleanly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		var join map[string]any
		if err := wsjson.Read(r.Context(), conn, &join); err != nil {
			return
		}
		conn.Close(websocket.StatusNormalClosure, "bye")
	}))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session := core.NewSession(core.SessionConfig{
		Channel: "lobby",
		URL:     strings.Replace(ts.URL, "http", "ws", 1),
	}, NewDialer(Options{}), nil)
	if err := session.Connect(ctx, "BlueBot"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Leave(context.Background())

	select {
	case <-session.Done():
	case <-ctx.Done():
		t.Fatal("listen loop did not stop after server close")
	}
	if err := session.Err(); err != nil {
		t.Fatalf("normal close reported as failure: %v", err)
	}
}
