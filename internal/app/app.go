package app

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/hackchat-bot/internal/bot"
	"github.com/vovakirdan/hackchat-bot/internal/config"
	"github.com/vovakirdan/hackchat-bot/internal/core"
	transporthttp "github.com/vovakirdan/hackchat-bot/internal/transport/http"
	"github.com/vovakirdan/hackchat-bot/internal/transport/ws"
)

// App wires together the session, the command bot and the optional status API.
type App struct {
	cfg     config.Config
	session *core.Session
	bot     *bot.Bot
	server  *stdhttp.Server
	log     *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	return NewWithDialer(cfg, ws.NewDialer(ws.Options{
		SendRate:  cfg.SendRate,
		SendBurst: cfg.SendBurst,
	}), logger)
}

// NewWithDialer is New with a caller-supplied transport.
func NewWithDialer(cfg config.Config, dialer core.Dialer, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	header := stdhttp.Header{}
	if cfg.UserAgent != "" {
		header.Set("User-Agent", cfg.UserAgent)
	}

	session := core.NewSession(core.SessionConfig{
		Channel: cfg.Channel,
		URL:     cfg.URL,
		Header:  header,
	}, dialer, logger)

	b, err := bot.New(cfg.Prefix, session, logger)
	if err != nil {
		return nil, fmt.Errorf("init bot: %w", err)
	}

	a := &App{
		cfg:     cfg,
		session: session,
		bot:     b,
		log:     logger,
	}
	if cfg.StatusAddr != "" {
		a.server = transporthttp.NewServer(cfg.StatusAddr, session, b, logger)
	}
	a.logLifecycle()
	return a, nil
}

// Bot returns the command bot so callers can register commands before Run.
func (a *App) Bot() *bot.Bot {
	return a.bot
}

// Session returns the underlying channel session.
func (a *App) Session() *core.Session {
	return a.session
}

// Run joins the channel and blocks until ctx is cancelled or the session dies.
// A session that stops on its own (rate limit, transport loss) is returned as an error.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Connect(ctx, a.cfg.Nick); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-a.session.Done():
			if err := a.session.Err(); err != nil {
				return fmt.Errorf("session stopped: %w", err)
			}
			return nil
		case <-gctx.Done():
			leaveCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()
			a.log.Info().Msg("leaving channel")
			return a.session.Leave(leaveCtx)
		}
	})

	if a.server != nil {
		g.Go(func() error {
			a.log.Info().Str("addr", a.server.Addr).Msg("status api listening")
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
				return fmt.Errorf("status api: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()
			return a.server.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	if a.session.Connected() {
		leaveCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if leaveErr := a.session.Leave(leaveCtx); leaveErr != nil {
			a.log.Warn().Err(leaveErr).Msg("failed to close connection")
		}
	}
	a.waitHandlers()
	return err
}

// waitHandlers gives in-flight handlers the shutdown timeout to finish.
func (a *App) waitHandlers() {
	done := make(chan struct{})
	go func() {
		a.session.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(a.cfg.ShutdownTimeout):
		a.log.Warn().Msg("handlers still running at shutdown")
	}
}

func (a *App) logLifecycle() {
	a.session.On(core.EventReady, func(context.Context, core.Event) error {
		self, _ := a.session.Self()
		a.log.Info().
			Str("channel", a.session.Channel()).
			Str("nick", self.Nick).
			Int("members", len(a.session.Members())).
			Msg("ready")
		return nil
	})
	a.session.On(core.EventMemberJoined, func(_ context.Context, ev core.Event) error {
		a.log.Info().Str("nick", ev.Member.Nick).Int64("userid", ev.Member.ID).Msg("member joined")
		return nil
	})
	a.session.On(core.EventMemberLeave, func(_ context.Context, ev core.Event) error {
		a.log.Info().Str("nick", ev.Member.Nick).Int64("userid", ev.Member.ID).Msg("member left")
		return nil
	})
	a.session.On(core.EventWarn, func(_ context.Context, ev core.Event) error {
		a.log.Warn().Str("text", ev.Text).Msg("server warning")
		return nil
	})
	a.session.On(core.EventInfo, func(_ context.Context, ev core.Event) error {
		a.log.Info().Str("text", ev.Text).Msg("server info")
		return nil
	})
}
