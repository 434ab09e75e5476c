package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyWorkDuration         = "work.duration"
	keyWorkMessage          = "work.message"
	keyWorkSound            = "work.sound"
	keyWorkColor            = "work.color"
	keyShortBreakDuration   = "short_break.duration"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakSound      = "short_break.sound"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakDuration    = "long_break.duration"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakSound       = "long_break.sound"
	keyLongBreakColor       = "long_break.color"
	keyLongBreakInterval    = "settings.long_break_interval"
	keyAutoStartWork        = "settings.auto_start_work"
	keyAutoStartBreak       = "settings.auto_start_break"
	keySoundOnBreak         = "settings.sound_on_break"
	keyStrict               = "settings.strict"
	keyAmbientSound         = "settings.ambient_sound"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyDailyGoal            = "settings.daily_goal"
	keyWeeklyGoal           = "settings.weekly_goal"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
)

const (
	defaultWorkDuration       = 25 * time.Minute
	defaultShortBreakDuration = 5 * time.Minute
	defaultLongBreakDuration  = 15 * time.Minute
	defaultLongBreakInterval  = 4
	defaultDailyGoal          = 8
	defaultWeeklyGoal         = 40
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing a default file first if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keyWorkDuration, defaultWorkDuration.String())
	v.SetDefault(keyWorkMessage, "Focus on your task")
	v.SetDefault(keyWorkColor, "#B0DB43")
	v.SetDefault(keyWorkSound, "loud_bell")
	v.SetDefault(keyShortBreakDuration, defaultShortBreakDuration.String())
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyShortBreakSound, "bell")
	v.SetDefault(keyLongBreakDuration, defaultLongBreakDuration.String())
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyLongBreakSound, "bell")
	v.SetDefault(keyLongBreakInterval, defaultLongBreakInterval)
	v.SetDefault(keyAutoStartBreak, true)
	v.SetDefault(keyAutoStartWork, false)
	v.SetDefault(keySoundOnBreak, false)
	v.SetDefault(keyStrict, false)
	v.SetDefault(keyAmbientSound, "")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDailyGoal, defaultDailyGoal)
	v.SetDefault(keyWeeklyGoal, defaultWeeklyGoal)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return err
	}

	durations := map[*SessionConfig]string{
		&c.Work:       v.GetString(keyWorkDuration),
		&c.ShortBreak: v.GetString(keyShortBreakDuration),
		&c.LongBreak:  v.GetString(keyLongBreakDuration),
	}

	for sc, durStr := range durations {
		dur, err := parseDuration(durStr)
		if err != nil {
			return err
		}

		sc.Duration = dur
	}

	return nil
}

// parseDuration parses a duration string, treating a bare number as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	return time.ParseDuration(s + "m")
}
