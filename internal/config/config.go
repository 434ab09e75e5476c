// Package config is responsible for setting the program config from the
// config file and command-line arguments
package config

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomate-app/tomate/internal/pathutil"
)

type (
	// SessionType represents the type of timer session.
	SessionType string

	// SessionConfig holds the per-session settings.
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Sound    string        `mapstructure:"sound"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// Settings holds the cycle and behaviour settings.
	Settings struct {
		AmbientSound      string `mapstructure:"ambient_sound"`
		Cmd               string `mapstructure:"cmd"`
		LongBreakInterval int    `mapstructure:"long_break_interval"`
		DailyGoal         int    `mapstructure:"daily_goal"`
		WeeklyGoal        int    `mapstructure:"weekly_goal"`
		AutoStartWork     bool   `mapstructure:"auto_start_work"`
		AutoStartBreak    bool   `mapstructure:"auto_start_break"`
		SoundOnBreak      bool   `mapstructure:"sound_on_break"`
		Strict            bool   `mapstructure:"strict"`
		TwentyFourHour    bool   `mapstructure:"24hr_clock"`
	}

	// Notifications holds the desktop notification settings.
	Notifications struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// Display holds display-related settings.
	Display struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// Config is the program configuration derived from the config file and
	// command-line arguments.
	Config struct {
		Stderr        io.Writer     `mapstructure:"-"`
		Stdout        io.Writer     `mapstructure:"-"`
		Stdin         io.Reader     `mapstructure:"-"`
		Work          SessionConfig `mapstructure:"work"`
		ShortBreak    SessionConfig `mapstructure:"short_break"`
		LongBreak     SessionConfig `mapstructure:"long_break"`
		Settings      Settings      `mapstructure:"settings"`
		Notifications Notifications `mapstructure:"notifications"`
		Display       Display       `mapstructure:"display"`
		Style         Style         `mapstructure:"-"`
		Tags          []string      `mapstructure:"-"`
		PathToConfig  string        `mapstructure:"-"`
		PathToDB      string        `mapstructure:"-"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.4.0"

const (
	Work       SessionType = "Work session"
	ShortBreak SessionType = "Short break"
	LongBreak  SessionType = "Long break"
)

const SoundOff = "off"

var (
	timerCfg *Config
	once     sync.Once
)

// Duration returns the configured duration for the given session type.
func (c *Config) Duration(sessType SessionType) time.Duration {
	switch sessType {
	case Work:
		return c.Work.Duration
	case ShortBreak:
		return c.ShortBreak.Duration
	case LongBreak:
		return c.LongBreak.Duration
	}

	return 0
}

// Message returns the configured message for the given session type.
func (c *Config) Message(sessType SessionType) string {
	switch sessType {
	case Work:
		return c.Work.Message
	case ShortBreak:
		return c.ShortBreak.Message
	case LongBreak:
		return c.LongBreak.Message
	}

	return ""
}

// AlertSound returns the configured alert sound for the given session type.
func (c *Config) AlertSound(sessType SessionType) string {
	switch sessType {
	case Work:
		return c.Work.Sound
	case ShortBreak:
		return c.ShortBreak.Sound
	case LongBreak:
		return c.LongBreak.Sound
	}

	return ""
}

// New creates a new Config with the provided options applied in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		PathToConfig: pathutil.ConfigFilePath(),
		PathToDB:     pathutil.DBFilePath(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	cfg.Style = newStyle(cfg)

	return cfg, nil
}

// Timer initializes and returns the timer configuration. It is built once
// from the config file and command-line arguments.
func Timer(ctx *cli.Context) *Config {
	once.Do(func() {
		cfg, err := New(
			WithViperConfig(pathutil.ConfigFilePath()),
			WithCliOverrides(ctx),
		)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}

		timerCfg = cfg
	})

	return timerCfg
}

// WithCliOverrides returns an Option that overrides config file values with
// any matching command-line arguments.
func WithCliOverrides(ctx *cli.Context) Option {
	return func(c *Config) error {
		if ctx == nil {
			return nil
		}

		if ctx.Uint("work") > 0 {
			c.Work.Duration = time.Duration(ctx.Uint("work")) * time.Minute
		}

		if ctx.Uint("short-break") > 0 {
			c.ShortBreak.Duration = time.Duration(
				ctx.Uint("short-break"),
			) * time.Minute
		}

		if ctx.Uint("long-break") > 0 {
			c.LongBreak.Duration = time.Duration(
				ctx.Uint("long-break"),
			) * time.Minute
		}

		if ctx.Uint("long-break-interval") > 0 {
			c.Settings.LongBreakInterval = int(ctx.Uint("long-break-interval"))
		}

		if ctx.Bool("disable-notification") {
			c.Notifications.Enabled = false
		}

		if sound := ctx.String("sound"); sound != "" {
			if sound == SoundOff {
				c.Settings.AmbientSound = ""
			} else {
				c.Settings.AmbientSound = sound
			}
		}

		if ctx.Bool("sound-on-break") {
			c.Settings.SoundOnBreak = true
		}

		// break-sound plays when a work session ends, work-sound when a
		// break ends
		if sound := ctx.String("break-sound"); sound != "" {
			c.Work.Sound = sound
		}

		if sound := ctx.String("work-sound"); sound != "" {
			c.ShortBreak.Sound = sound
			c.LongBreak.Sound = sound
		}

		if ctx.Bool("strict") {
			c.Settings.Strict = true
		}

		if cmd := ctx.String("session-cmd"); cmd != "" {
			c.Settings.Cmd = cmd
		}

		if tag := ctx.String("tag"); tag != "" {
			for _, t := range strings.Split(tag, ",") {
				t = strings.TrimSpace(t)
				if t != "" {
					c.Tags = append(c.Tags, t)
				}
			}
		}

		return nil
	}
}
