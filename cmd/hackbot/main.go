package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hackchat-bot/internal/app"
	"github.com/vovakirdan/hackchat-bot/internal/config"
	applog "github.com/vovakirdan/hackchat-bot/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:           "hackbot",
		Short:         "Command bot for a hack.chat channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := applog.New(overrides.LogLevel)

			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := applog.New(cfg.LogLevel)
			logger.Debug().Str("config", path).Msg("configuration loaded")

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			if err := registerDemoCommands(application.Bot()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("channel", cfg.Channel).Str("nick", cfg.Nick).Msg("starting hackbot")
			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("bot exited with error")
				return err
			}
			logger.Info().Msg("bot stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	flags.StringVar(&overrides.URL, "url", "", "websocket endpoint")
	flags.StringVar(&overrides.Channel, "channel", "", "channel to join")
	flags.StringVar(&overrides.Nick, "nick", "", "nickname to join with")
	flags.StringVar(&overrides.Prefix, "prefix", "", "command prefix")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&overrides.StatusAddr, "status-addr", "", "listen address of the status API")
	flags.Float64Var(&overrides.SendRate, "send-rate", 0, "outbound messages per second, 0 for unlimited")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	return cmd
}
