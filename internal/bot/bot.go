package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/hackchat-bot/internal/core"
)

// Channel is the part of a session the bot needs.
type Channel interface {
	On(kind core.EventKind, h core.Handler)
	Send(ctx context.Context, text string) error
}

// Bot routes prefixed chat messages to registered commands.
type Bot struct {
	prefix   string
	channel  Channel
	commands *Registry
	log      *zerolog.Logger
}

// New builds a bot on channel, registers the built-in help command and
// subscribes the router to message events. Call it before registering other
// message handlers so the router runs first.
func New(prefix string, channel Channel, logger *zerolog.Logger) (*Bot, error) {
	if prefix == "" || strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	b := &Bot{
		prefix:   prefix,
		channel:  channel,
		commands: NewRegistry(),
		log:      logger,
	}

	if _, err := b.commands.Register(
		"help",
		"show all the available commands",
		[]Arg{{Name: "command", Description: "the command to show it usage"}},
		b.help,
	); err != nil {
		return nil, err
	}

	channel.On(core.EventMessage, b.HandleMessage)
	return b, nil
}

// Prefix returns the configured command prefix.
func (b *Bot) Prefix() string {
	return b.prefix
}

// Register adds a command to the bot.
func (b *Bot) Register(name, description string, args []Arg, cb Callback) (*Command, error) {
	cmd, err := b.commands.Register(name, description, args, cb)
	if err != nil {
		return nil, err
	}
	b.log.Debug().Str("command", name).Msg("command registered")
	return cmd, nil
}

// Commands returns the registered commands in registration order.
func (b *Bot) Commands() []*Command {
	return b.commands.List()
}

// Command looks up a registered command.
func (b *Bot) Command(name string) (*Command, error) {
	return b.commands.Get(name)
}

// Send posts text to the bot's channel.
func (b *Bot) Send(ctx context.Context, text string) error {
	return b.channel.Send(ctx, text)
}

// HandleMessage is the session handler for message events.
func (b *Bot) HandleMessage(ctx context.Context, ev core.Event) error {
	if ev.Message == nil {
		return nil
	}
	return b.Route(ctx, ev.Message.Text)
}

// Route runs the command named by text when it starts with the prefix.
// Text without the prefix is ignored. An unknown command returns ErrUnknownCommand
// and nothing is sent to the channel.
func (b *Bot) Route(ctx context.Context, text string) error {
	if !strings.HasPrefix(text, b.prefix) {
		return nil
	}

	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], b.prefix)

	cmd, err := b.commands.Get(name)
	if err != nil {
		return err
	}

	args := Args(ParseArguments(strings.Join(fields[1:], " ")))
	b.log.Debug().Str("command", name).Int("args", len(args)).Msg("running command")

	if err := cmd.Run(ctx, args); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}
	return nil
}
