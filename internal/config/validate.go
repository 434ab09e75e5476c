package config

import (
	"regexp"
	"time"
)

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	// Valid long break intervals.
	minLongBreakInterval = 1
	maxLongBreakInterval = 10

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateSessionConfig(c.Work, "work"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.ShortBreak, "short break"); err != nil {
		return err
	}

	if err := c.validateSessionConfig(c.LongBreak, "long break"); err != nil {
		return err
	}

	if err := c.validateSessionRelationships(); err != nil {
		return err
	}

	return c.validateSettings()
}

// validateSessionConfig validates an individual SessionConfig.
func (c *Config) validateSessionConfig(
	sc SessionConfig,
	sessionType string,
) error {
	if sc.Duration < minSessionDuration || sc.Duration > maxSessionDuration {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	if sc.Message == "" {
		return errEmptyMsg.Fmt(sessionType)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(sessionType, sc.Color)
	}

	return nil
}

func (c *Config) validateSessionRelationships() error {
	if c.ShortBreak.Duration >= c.Work.Duration {
		return errShortBreakTooLong.Fmt(
			c.ShortBreak.Duration,
			c.Work.Duration,
		)
	}

	if c.LongBreak.Duration <= c.ShortBreak.Duration {
		return errLongBreakTooShort.Fmt(
			c.LongBreak.Duration,
			c.ShortBreak.Duration,
		)
	}

	return nil
}

func (c *Config) validateSettings() error {
	interval := c.Settings.LongBreakInterval
	if interval < minLongBreakInterval || interval > maxLongBreakInterval {
		return errInvalidLongBreakInterval.Fmt(
			minLongBreakInterval,
			maxLongBreakInterval,
		)
	}

	if c.Settings.DailyGoal < 0 {
		return errInvalidGoal.Fmt("daily", c.Settings.DailyGoal)
	}

	if c.Settings.WeeklyGoal < 0 {
		return errInvalidGoal.Fmt("weekly", c.Settings.WeeklyGoal)
	}

	return nil
}
