package main

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/vovakirdan/hackchat-bot/internal/bot"
)

func registerDemoCommands(b *bot.Bot) error {
	if _, err := b.Register(
		"encode",
		"encode a string in base64",
		[]bot.Arg{{Name: "string", Description: "the string to encode", Required: true}},
		func(ctx context.Context, args bot.Args) error {
			return b.Send(ctx, "Encoded: "+base64.StdEncoding.EncodeToString([]byte(args.Get(0))))
		},
	); err != nil {
		return err
	}

	_, err := b.Register(
		"decode",
		"decode a base64 encoded string",
		[]bot.Arg{{Name: "string", Description: "the string to decode", Required: true}},
		func(ctx context.Context, args bot.Args) error {
			raw, err := base64.StdEncoding.DecodeString(args.Get(0))
			if err != nil {
				return fmt.Errorf("decode base64: %w", err)
			}
			return b.Send(ctx, "Decoded: "+string(raw))
		},
	)
	return err
}
