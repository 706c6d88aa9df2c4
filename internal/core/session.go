package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/hackchat-bot/internal/proto"
)

// SessionConfig describes which channel a session joins and where.
type SessionConfig struct {
	Channel string
	URL     string
	Header  http.Header
}

// Session is one connection to a chat channel. It owns the transport and the
// roster, and dispatches server frames to registered handlers.
type Session struct {
	cfg    SessionConfig
	dialer Dialer
	log    *zerolog.Logger
	roster *Roster

	mu         sync.RWMutex
	conn       Conn
	connLog    zerolog.Logger
	self       *Member
	handlers   map[EventKind][]Handler
	handlerCtx context.Context
	stopLoop   context.CancelFunc
	done       chan struct{}
	err        error

	closing atomic.Bool
	wg      sync.WaitGroup
	spawn   func(fn func())
}

// NewSession constructs a session that is not yet connected.
func NewSession(cfg SessionConfig, dialer Dialer, logger *zerolog.Logger) *Session {
	if cfg.URL == "" {
		cfg.URL = proto.DefaultURL
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	s := &Session{
		cfg:        cfg,
		dialer:     dialer,
		log:        logger,
		roster:     NewRoster(),
		connLog:    logger.With().Str("channel", cfg.Channel).Logger(),
		handlers:   make(map[EventKind][]Handler),
		handlerCtx: context.Background(),
	}
	s.spawn = s.goSpawn
	return s
}

// Channel returns the channel name.
func (s *Session) Channel() string {
	return s.cfg.Channel
}

// Connect opens the transport, joins the channel as nick and starts the listen loop.
// It returns once the join frame is written; roster state arrives later with EventReady.
func (s *Session) Connect(ctx context.Context, nick string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return ErrAlreadyConnected
	}

	conn, err := s.dialer.Dial(ctx, s.cfg.URL, s.cfg.Header)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", ErrConnection, s.cfg.URL, err)
	}
	if err := conn.Write(ctx, proto.NewJoin(s.cfg.Channel, nick)); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: send join: %w", ErrConnection, err)
	}

	loopCtx, stop := context.WithCancel(context.WithoutCancel(ctx))

	s.conn = conn
	s.connLog = s.log.With().
		Str("channel", s.cfg.Channel).
		Str("conn_id", uuid.NewString()).
		Logger()
	s.handlerCtx = context.WithoutCancel(ctx)
	s.stopLoop = stop
	s.done = make(chan struct{})
	s.err = nil
	s.closing.Store(false)

	s.connLog.Info().Str("nick", nick).Str("url", s.cfg.URL).Msg("joined channel")

	go s.listen(loopCtx, conn, s.done)
	return nil
}

// Send posts text to the channel. It does not wait for any acknowledgement.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}
	if err := conn.Write(ctx, proto.NewChat(text)); err != nil {
		return fmt.Errorf("send chat: %w", err)
	}
	return nil
}

// On registers h for events of the given kind. Handlers for the same kind are
// invoked in registration order.
func (s *Session) On(kind EventKind, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = append(s.handlers[kind], h)
}

// Dispatch starts every handler registered for ev.Kind on its own goroutine and
// returns without waiting for them. Dispatching a kind with no handlers is a no-op.
func (s *Session) Dispatch(ev Event) {
	s.mu.RLock()
	handlers := append([]Handler(nil), s.handlers[ev.Kind]...)
	ctx := s.handlerCtx
	s.mu.RUnlock()

	for _, h := range handlers {
		s.spawn(func() {
			s.invoke(ctx, h, ev)
		})
	}
}

// Leave closes the transport, waits for the listen loop to stop and clears the roster.
// The session is cleared even when ctx expires first; ctx.Err() then reports that the
// listen loop had not yet stopped. Handlers still running are not cancelled.
func (s *Session) Leave(ctx context.Context) error {
	s.mu.Lock()
	conn, done, stop := s.conn, s.done, s.stopLoop
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	s.closing.Store(true)
	closeErr := conn.Close()
	stop()

	var waitErr error
	select {
	case <-done:
	case <-ctx.Done():
		waitErr = ctx.Err()
	}

	s.mu.Lock()
	s.conn = nil
	s.self = nil
	logger := s.connLog
	s.mu.Unlock()
	s.roster.Reset()

	if waitErr != nil {
		logger.Warn().Err(waitErr).Msg("left channel before listen loop stopped")
		return waitErr
	}
	logger.Info().Msg("left channel")
	return closeErr
}

// Done is closed when the listen loop stops. It is nil before the first Connect.
func (s *Session) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Err reports why the listen loop stopped. It is nil while the loop runs
// and after a clean Leave.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Wait blocks until every dispatched handler has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Connected reports whether the session holds an open transport.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

// Self returns the member that represents this connection, once the roster snapshot arrived.
func (s *Session) Self() (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.self == nil {
		return Member{}, false
	}
	return *s.self, true
}

// Members returns a snapshot of the roster in join order.
func (s *Session) Members() []Member {
	return s.roster.Snapshot()
}

// Member looks up a roster entry by ID.
func (s *Session) Member(id int64) (Member, error) {
	m, ok := s.roster.Get(id)
	if !ok {
		return Member{}, fmt.Errorf("%w: userid %d", ErrUnknownMember, id)
	}
	return m, nil
}

func (s *Session) goSpawn(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (s *Session) invoke(ctx context.Context, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger := s.logger()
			logger.Error().Str("event", string(ev.Kind)).Interface("panic", r).Msg("handler panicked")
		}
	}()

	if err := h(ctx, ev); err != nil {
		logger := s.logger()
		logger.Error().Err(err).Str("event", string(ev.Kind)).Msg("handler failed")
	}
}

func (s *Session) logger() zerolog.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connLog
}

// setSelf records m as this connection unless self is already known.
func (s *Session) setSelf(m Member) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.self != nil {
		return false
	}
	s.self = &m
	return true
}

func (s *Session) finish(err error, done chan struct{}) {
	s.mu.Lock()
	// A loop outliving Leave must not overwrite the state of a later Connect.
	if s.done == done {
		s.err = err
	}
	logger := s.connLog
	s.mu.Unlock()

	switch {
	case err == nil:
		logger.Debug().Msg("listen loop stopped")
	case errors.Is(err, ErrRateLimited):
		logger.Warn().Err(err).Msg("listen loop stopped")
	default:
		logger.Error().Err(err).Msg("listen loop stopped")
	}
	close(done)
}
