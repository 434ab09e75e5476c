package config

import (
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/urfave/cli/v2"

	"github.com/tomate-app/tomate/internal/timeutil"
)

// FilterConfig represents a reporting time range and tag filter derived
// from command-line arguments.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Tags      []string
}

// timeRange returns the start and end time according to the specified
// time period.
func timeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)
	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// parseDate parses a free-form date expression such as "2024-06-01",
// "yesterday", or "last monday 9am".
func parseDate(str string) (time.Time, error) {
	dt, err := dateparser.Parse(nil, str)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// Filter builds the reporting filter from command-line arguments. A period
// takes precedence over explicit start and end dates.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	cfg := &FilterConfig{}

	if tag := ctx.String("tag"); tag != "" {
		cfg.Tags = strings.Split(tag, ",")
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		cfg.StartTime, cfg.EndTime = timeRange(period)

		return cfg, nil
	}

	if start := ctx.String("start"); start != "" {
		dateTime, err := parseDate(start)
		if err != nil {
			return nil, err
		}

		cfg.StartTime = dateTime
	}

	cfg.EndTime = time.Now()

	if end := ctx.String("end"); end != "" {
		dateTime, err := parseDate(end)
		if err != nil {
			return nil, err
		}

		cfg.EndTime = dateTime
	}

	if cfg.StartTime.IsZero() {
		if ctx.String("start") != "" || ctx.String("end") != "" {
			return nil, errInvalidStartDate
		}

		// default reporting period
		cfg.StartTime, cfg.EndTime = timeRange(timeutil.Period7Days)

		return cfg, nil
	}

	if cfg.EndTime.Before(cfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return cfg, nil
}
