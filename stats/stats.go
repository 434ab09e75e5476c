// Package stats reports focus session statistics.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/timeutil"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/store"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

type aggregatePeriod string

const (
	monthly aggregatePeriod = "Monthly"
	daily   aggregatePeriod = "Daily"
	yearly  aggregatePeriod = "Yearly"
	weekly  aggregatePeriod = "Weekly"
	hourly  aggregatePeriod = "Hourly"
	all     aggregatePeriod = "All"
)

type summary struct {
	tags         map[string]time.Duration
	totalTime    time.Duration
	completed    int
	abandoned    int
	avgCompleted int
	avgAbandoned int
	avgTime      time.Duration
}

type aggregates struct {
	weekly  map[int]time.Duration
	daily   map[int]time.Duration
	yearly  map[int]time.Duration
	monthly map[int]time.Duration
	hourly  map[int]time.Duration
}

// Report aggregates session history for a reporting period.
type Report struct {
	opts config.FilterConfig
}

func NewReport(opts config.FilterConfig) *Report {
	return &Report{opts: opts}
}

// sessionDuration returns the elapsed time for a session within the bounds
// of the reporting period.
func (r *Report) sessionDuration(sess *models.Session) time.Duration {
	var duration time.Duration

outer:
	for _, event := range sess.Timeline {
		if event.StartTime.After(r.opts.StartTime) &&
			event.EndTime.Before(r.opts.EndTime) {
			duration += event.EndTime.Sub(event.StartTime)
			continue
		}

		for date := event.StartTime; date.Before(event.EndTime); date = date.Add(1 * time.Minute) {
			// prevent minutes that fall outside the specified bounds
			// from being included
			if date.Before(r.opts.StartTime) {
				continue
			}

			if date.After(r.opts.EndTime) {
				break outer
			}

			duration += time.Minute * 1
		}
	}

	return duration
}

func (r *Report) updateAggr(
	event models.SessionTimeline,
	totals *aggregates,
	period aggregatePeriod,
) {
	for date := event.StartTime; date.Before(event.EndTime); date = date.Add(1 * time.Minute) {
		if date.Before(r.opts.StartTime) {
			continue
		}

		if date.After(r.opts.EndTime) {
			break
		}

		i := timeutil.DayFormat(date)

		switch period {
		case yearly:
			totals.yearly[date.Year()] += time.Minute * 1
		case monthly:
			totals.monthly[int(date.Month())] += time.Minute * 1
		case weekly:
			totals.weekly[int(date.Weekday())] += time.Minute * 1
		case daily:
			totals.daily[i] += time.Minute * 1
		case hourly:
			totals.hourly[date.Hour()] += time.Minute * 1
		case all:
			totals.monthly[int(date.Month())] += time.Minute * 1
			totals.weekly[int(date.Weekday())] += time.Minute * 1
			totals.daily[i] += time.Minute * 1
			totals.hourly[date.Hour()] += time.Minute * 1
			totals.yearly[date.Year()] += time.Minute * 1
		}
	}
}

func (r *Report) populateMap(max int) map[int]time.Duration {
	m := make(map[int]time.Duration)

	if max == 0 {
		return m
	}

	if max == -1 {
		start := timeutil.RoundToStart(r.opts.StartTime)

		for date := start; date.Before(r.opts.EndTime); date = date.AddDate(0, 0, 1) {
			m[timeutil.DayFormat(date)] = time.Duration(0)
		}

		return m
	}

	for i := 0; i <= max; i++ {
		m[i] = time.Duration(0)
	}

	return m
}

func (r *Report) computeAggregates(sessions []*models.Session) aggregates {
	var totals aggregates

	totals.yearly = r.populateMap(0)
	totals.monthly = r.populateMap(0)
	totals.weekly = r.populateMap(6)
	totals.daily = r.populateMap(-1)
	totals.hourly = r.populateMap(23)

	for _, sess := range sessions {
		for _, event := range sess.Timeline {
			start := event.StartTime
			end := event.EndTime

			if start.After(r.opts.StartTime) && end.Before(r.opts.EndTime) {
				if start.Year() == end.Year() {
					totals.yearly[start.Year()] += end.Sub(start)
				} else {
					r.updateAggr(event, &totals, yearly)
				}

				if start.Month() == end.Month() {
					totals.monthly[int(start.Month())] += end.Sub(start)
				} else {
					r.updateAggr(event, &totals, monthly)
				}

				if start.Weekday() == end.Weekday() {
					totals.weekly[int(start.Weekday())] += end.Sub(start)
				} else {
					r.updateAggr(event, &totals, weekly)
				}

				if start.Day() == end.Day() {
					totals.daily[timeutil.DayFormat(start)] += end.Sub(start)
				} else {
					r.updateAggr(event, &totals, daily)
				}

				if start.Hour() == end.Hour() {
					totals.hourly[start.Hour()] += end.Sub(start)
				} else {
					r.updateAggr(event, &totals, hourly)
				}
			} else {
				r.updateAggr(event, &totals, all)
			}
		}
	}

	return totals
}

// computeTotals calculates the total time, completed sessions, and abandoned
// sessions for the reporting period.
func (r *Report) computeTotals(sessions []*models.Session) summary {
	var totals summary

	totals.tags = make(map[string]time.Duration)

	for _, sess := range sessions {
		duration := r.sessionDuration(sess)

		totals.totalTime += duration

		for _, tag := range sess.Tags {
			totals.tags[tag] += duration
		}

		if len(sess.Tags) == 0 {
			totals.tags["uncategorized"] += duration
		}

		if sess.Completed {
			totals.completed++
		} else {
			totals.abandoned++
		}
	}

	hoursDiff := timeutil.Round(r.opts.EndTime.Sub(r.opts.StartTime).Hours())

	numberOfDays := hoursDiff / timeutil.HoursInADay
	if numberOfDays < 1 {
		numberOfDays = 1
	}

	totals.avgTime = time.Duration(
		float64(totals.totalTime) / float64(numberOfDays),
	)
	totals.avgCompleted = timeutil.Round(
		float64(totals.completed) / float64(numberOfDays),
	)
	totals.avgAbandoned = timeutil.Round(
		float64(totals.abandoned) / float64(numberOfDays),
	)

	return totals
}

func formatDuration(d time.Duration) string {
	hrs, mins := timeutil.MinsToHoursAndMins(timeutil.Round(d.Minutes()))

	if hrs == 0 {
		return fmt.Sprintf("%d mins", mins)
	}

	return fmt.Sprintf("%d hrs %d mins", hrs, mins)
}

func getBarChart(data map[int]time.Duration, period aggregatePeriod) string {
	if len(data) == 0 {
		return ""
	}

	header := ui.Blue(fmt.Sprintf("\n%s breakdown (minutes)", period))

	type keyValue struct {
		value time.Duration
		key   int
	}

	sl := make([]keyValue, 0, len(data))
	for k, v := range data {
		sl = append(sl, keyValue{v, k})
	}

	sort.SliceStable(sl, func(i, j int) bool {
		return sl[i].key < sl[j].key
	})

	var bars pterm.Bars

	for _, v := range sl {
		var label string

		switch period {
		case yearly:
			label = fmt.Sprintf("%d", v.key)
		case monthly:
			label = time.Month(v.key).String()
		case weekly:
			label = time.Weekday(v.key).String()
		case daily:
			label = timeutil.FromDayFormat(v.key).Format("Jan 02, 2006")
		case hourly:
			label = fmt.Sprintf("%02d:00", v.key)
		case all:
		}

		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(v.value.Minutes()),
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// getTags retrieves the tag breakdown for the reporting period.
func getTags(tags map[string]time.Duration) string {
	var builder strings.Builder

	if len(tags) == 0 {
		return ""
	}

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Tags")))

	type keyValue struct {
		key   string
		value time.Duration
	}

	kv := make([]keyValue, 0, len(tags))
	for k, v := range tags {
		kv = append(kv, keyValue{k, v})
	}

	sort.SliceStable(kv, func(i, j int) bool {
		return kv[i].value > kv[j].value
	})

	for _, v := range kv {
		tag := fmt.Sprintf(
			"%s: %s\n",
			v.key,
			ui.Green(formatDuration(v.value)),
		)

		builder.WriteString(tag)
	}

	return builder.String()
}

func getAverages(totals summary) string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Averages"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(formatDuration(totals.avgTime)),
	)

	completed := fmt.Sprintln(
		"Sessions completed:",
		ui.Green(totals.avgCompleted),
	)

	abandoned := fmt.Sprintln(
		"Sessions abandoned:",
		ui.Green(totals.avgAbandoned),
	)

	return header + timeLogged + completed + abandoned
}

// getSummary retrieves the work session summary for the reporting period.
func getSummary(totals summary) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(formatDuration(totals.totalTime)),
	)

	completed := fmt.Sprintln(
		"Sessions completed:",
		ui.Green(totals.completed),
	)

	abandoned := fmt.Sprintln(
		"Sessions abandoned:",
		ui.Green(totals.abandoned),
	)

	return header + timeLogged + completed + abandoned
}

// filterSessions ensures that sessions with an invalid end date are ignored.
func filterSessions(sessions []*models.Session) []*models.Session {
	filtered := sessions[:0]

	for _, sess := range sessions {
		if sess.EndTime.IsZero() || sess.EndTime.Before(sess.StartTime) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}

// Show displays the relevant statistics for the set time period after
// making the necessary calculations.
func Show(db store.DB, opts config.FilterConfig, w io.Writer) error {
	sessions, err := db.GetSessions(opts.StartTime, opts.EndTime, opts.Tags)
	if err != nil {
		return err
	}

	sessions = filterSessions(sessions)

	if len(sessions) == 0 {
		fmt.Fprintln(w, noSessionsMsg)
		return nil
	}

	// For all-time, set the start time to the date of the first session.
	if opts.StartTime.IsZero() {
		opts.StartTime = timeutil.RoundToStart(sessions[0].StartTime)
	}

	r := NewReport(opts)

	totals := r.computeTotals(sessions)
	aggr := r.computeAggregates(sessions)

	reportingStart := opts.StartTime.Format("January 02, 2006")
	reportingEnd := opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	hoursDiff := timeutil.Round(opts.EndTime.Sub(opts.StartTime).Hours())

	var history string

	if hoursDiff > timeutil.HoursInADay &&
		hoursDiff <= timeutil.MaxHoursInAMonth {
		history = getBarChart(aggr.daily, daily)
	} else if hoursDiff > timeutil.MaxHoursInAYear {
		history = getBarChart(aggr.yearly, yearly)
	} else {
		history = getBarChart(aggr.monthly, monthly)
	}

	output := fmt.Sprint(
		header,
		getSummary(totals),
		getAverages(totals),
		getTags(totals.tags),
		history,
		getBarChart(aggr.weekly, weekly),
		getBarChart(aggr.hourly, hourly),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))

	return nil
}
