package config

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/vovakirdan/hackchat-bot/internal/proto"
)

// Config holds bot configuration values.
type Config struct {
	URL             string        `mapstructure:"url" yaml:"url"`
	Channel         string        `mapstructure:"channel" yaml:"channel"`
	Nick            string        `mapstructure:"nick" yaml:"nick"`
	Prefix          string        `mapstructure:"prefix" yaml:"prefix"`
	UserAgent       string        `mapstructure:"user_agent" yaml:"user_agent"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	SendRate        float64       `mapstructure:"send_rate" yaml:"send_rate"`
	SendBurst       int           `mapstructure:"send_burst" yaml:"send_burst"`
	StatusAddr      string        `mapstructure:"status_addr" yaml:"status_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		URL:             proto.DefaultURL,
		Channel:         "testbot",
		Nick:            "BlueBot",
		Prefix:          "!",
		UserAgent:       "HackChat/1.0",
		LogLevel:        "info",
		SendBurst:       1,
		ShutdownTimeout: 5 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.URL != "" {
		c.URL = other.URL
	}
	if other.Channel != "" {
		c.Channel = other.Channel
	}
	if other.Nick != "" {
		c.Nick = other.Nick
	}
	if other.Prefix != "" {
		c.Prefix = other.Prefix
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.SendRate != 0 {
		c.SendRate = other.SendRate
	}
	if other.SendBurst != 0 {
		c.SendBurst = other.SendBurst
	}
	if other.StatusAddr != "" {
		c.StatusAddr = other.StatusAddr
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	switch {
	case c.URL == "":
		return errors.New("url is required")
	case c.Channel == "":
		return errors.New("channel is required")
	case c.Nick == "":
		return errors.New("nick is required")
	case c.Prefix == "" || strings.IndexFunc(c.Prefix, unicode.IsSpace) >= 0:
		return errors.New("prefix must be non-empty and contain no whitespace")
	case c.SendRate < 0:
		return errors.New("send_rate must not be negative")
	case c.ShutdownTimeout <= 0:
		return errors.New("shutdown_timeout must be positive")
	}
	return nil
}
