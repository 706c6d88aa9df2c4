package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vovakirdan/hackchat-bot/internal/core"
	"github.com/vovakirdan/hackchat-bot/internal/proto"
	"github.com/vovakirdan/hackchat-bot/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", proto.DefaultURL, "WebSocket address")
	nick := flag.String("nick", "cli-user", "nickname")
	channel := flag.String("channel", "testbot", "channel to join")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := core.NewSession(core.SessionConfig{
		Channel: *channel,
		URL:     *addr,
		Header:  http.Header{"User-Agent": []string{"HackChat/1.0"}},
	}, ws.NewDialer(ws.Options{}), nil)

	session.On(core.EventReady, func(context.Context, core.Event) error {
		fmt.Printf("[%s] %d online\n", session.Channel(), len(session.Members()))
		return nil
	})
	session.On(core.EventMessage, func(_ context.Context, ev core.Event) error {
		fmt.Printf("[%s] %s: %s\n", ev.Message.Channel, ev.Message.Author, ev.Message.Text)
		return nil
	})
	session.On(core.EventMemberJoined, func(_ context.Context, ev core.Event) error {
		fmt.Printf("[%s] %s joined\n", session.Channel(), ev.Member)
		return nil
	})
	session.On(core.EventMemberLeave, func(_ context.Context, ev core.Event) error {
		fmt.Printf("[%s] %s left\n", session.Channel(), ev.Member)
		return nil
	})
	session.On(core.EventWarn, func(_ context.Context, ev core.Event) error {
		fmt.Printf("! %s\n", ev.Text)
		return nil
	})
	session.On(core.EventInfo, func(_ context.Context, ev core.Event) error {
		fmt.Printf("* %s\n", ev.Text)
		return nil
	})

	if err := session.Connect(ctx, *nick); err != nil {
		return err
	}
	defer session.Leave(context.Background())

	fmt.Printf("Connected to %s as %s in channel %s\n", *addr, *nick, *channel)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	writeLoop(ctx, session)
	return session.Err()
}

func writeLoop(ctx context.Context, session *core.Session) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if err := session.Send(ctx, text); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
