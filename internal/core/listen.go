package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/hackchat-bot/internal/proto"
)

// listen reads frames until the transport closes or a frame cannot be applied.
// It is the only writer of the roster.
func (s *Session) listen(ctx context.Context, conn Conn, done chan struct{}) {
	for {
		raw, err := conn.Read(ctx)
		if err != nil {
			if s.closing.Load() || ctx.Err() != nil || errors.Is(err, ErrClosed) {
				err = nil
			} else {
				err = fmt.Errorf("read frame: %w", err)
			}
			s.finish(err, done)
			return
		}

		if err := s.handleFrame(raw); err != nil {
			s.finish(err, done)
			return
		}
	}
}

func (s *Session) handleFrame(raw []byte) error {
	frame, err := proto.Decode(raw)
	if err != nil {
		return err
	}

	logger := s.logger()

	switch body := frame.Body.(type) {
	case *proto.OnlineSet:
		for _, u := range body.Users {
			m := Member{Nick: u.Nick, ID: u.UserID}
			if s.roster.Add(m) {
				logger.Warn().Int64("userid", m.ID).Msg("duplicate userid in roster snapshot, overwriting")
			}
			if u.IsMe && !s.setSelf(m) {
				logger.Warn().Int64("userid", m.ID).Msg("self already set, ignoring isme entry")
			}
		}
		logger.Debug().Int("members", s.roster.Len()).Msg("roster snapshot applied")
		s.Dispatch(Event{Kind: EventReady})

	case *proto.ChatIn:
		author, ok := s.roster.Get(body.UserID)
		if !ok {
			return fmt.Errorf("%w: chat from userid %d", ErrUnknownMember, body.UserID)
		}
		msg := &ChatMessage{Channel: s.cfg.Channel, Author: author, Text: body.Text}
		s.Dispatch(Event{Kind: EventMessage, Message: msg})

	case *proto.OnlineAdd:
		m := Member{Nick: body.Nick, ID: body.UserID}
		if s.roster.Add(m) {
			logger.Warn().Int64("userid", m.ID).Msg("member joined twice, overwriting")
		}
		logger.Debug().Int64("userid", m.ID).Str("nick", m.Nick).Msg("member joined")
		s.Dispatch(Event{Kind: EventMemberJoined, Member: &m})

	case *proto.OnlineRemove:
		m, ok := s.roster.Remove(body.UserID)
		if !ok {
			return fmt.Errorf("%w: leave of userid %d", ErrUnknownMember, body.UserID)
		}
		logger.Debug().Int64("userid", m.ID).Str("nick", m.Nick).Msg("member left")
		s.Dispatch(Event{Kind: EventMemberLeave, Member: &m})

	case *proto.Notice:
		if frame.Cmd == proto.CmdInfo {
			s.Dispatch(Event{Kind: EventInfo, Text: body.Text})
			return nil
		}
		if body.Text == proto.RateLimitText {
			return rateLimited(body.Text)
		}
		s.Dispatch(Event{Kind: EventWarn, Text: body.Text})

	default:
		logger.Debug().Str("cmd", frame.Cmd).Msg("ignoring unknown frame")
	}
	return nil
}
