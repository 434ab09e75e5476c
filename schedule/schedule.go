// Package schedule manages focus blocks planned on the calendar
package schedule

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/markusmobius/go-dateparser"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/timeutil"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/store"
)

var (
	errEventOverlap = errors.New(
		"the focus block overlaps an existing one",
	)

	errEventInPast = errors.New(
		"the focus block must start in the future",
	)

	errEventNotFound = errors.New(
		"focus block not found: use 'tomate schedule list' to see upcoming blocks",
	)

	errInvalidDuration = errors.New(
		"the focus block duration must be greater than zero",
	)
)

const shortIDLen = 8

// ParseStart resolves a free-form date expression such as "tomorrow 9am"
// relative to now.
func ParseStart(expr string, now time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Future,
	}

	dt, err := dateparser.Parse(cfg, expr)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// Add plans a new focus block. Blocks may not overlap.
func Add(
	db store.DB,
	title string,
	start time.Time,
	duration time.Duration,
	tags []string,
	taskID string,
) (*models.Event, error) {
	if duration <= 0 {
		return nil, errInvalidDuration
	}

	if start.Before(time.Now()) {
		return nil, errEventInPast
	}

	event := &models.Event{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		StartTime: start,
		Duration:  duration,
		Tags:      tags,
		TaskID:    taskID,
		CreatedAt: time.Now(),
	}

	if event.Title == "" {
		event.Title = string(config.Work)
	}

	existing, err := db.ListEvents()
	if err != nil {
		return nil, err
	}

	for _, v := range existing {
		if event.Overlaps(v) {
			return nil, fmt.Errorf(
				"%w: %s at %s",
				errEventOverlap,
				v.Title,
				v.StartTime.Format(time.RFC1123),
			)
		}
	}

	if err := db.UpdateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

// Del removes a planned focus block by ID or ID prefix.
func Del(db store.DB, ref string) error {
	events, err := db.ListEvents()
	if err != nil {
		return err
	}

	ref = strings.TrimSpace(ref)

	for _, v := range events {
		if v.ID == ref || strings.HasPrefix(v.ID, ref) {
			return db.DeleteEvent(v.ID)
		}
	}

	return errEventNotFound
}

// List writes the agenda of focus blocks within the filter bounds, grouped
// by day.
func List(db store.DB, filter *config.FilterConfig, w io.Writer) error {
	events, err := db.ListEvents()
	if err != nil {
		return err
	}

	var inRange []*models.Event

	for _, v := range events {
		if v.StartTime.Before(filter.StartTime) ||
			v.StartTime.After(filter.EndTime) {
			continue
		}

		if len(filter.Tags) != 0 && !hasAnyTag(v, filter.Tags) {
			continue
		}

		inRange = append(inRange, v)
	}

	if len(inRange) == 0 {
		fmt.Fprintln(w, "No focus blocks found for the specified time range")
		return nil
	}

	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].StartTime.Before(inRange[j].StartTime)
	})

	tableBody := [][]string{
		{
			"ID",
			"DAY",
			"TIME",
			"TITLE",
			"TAGS",
		},
	}

	var prevDay time.Time

	for _, v := range inRange {
		day := v.StartTime.Format("Mon, Jan 02")
		if !prevDay.IsZero() && timeutil.SameDay(prevDay, v.StartTime) {
			day = ""
		}

		prevDay = v.StartTime

		span := fmt.Sprintf(
			"%s - %s",
			v.StartTime.Format("15:04"),
			v.EndTime().Format("15:04"),
		)

		tableBody = append(tableBody, []string{
			v.ID[:shortIDLen],
			day,
			span,
			v.Title,
			strings.Join(v.Tags, ", "),
		})
	}

	ui.PrintTable(tableBody, w)

	return nil
}

func hasAnyTag(event *models.Event, tags []string) bool {
	for _, t := range event.Tags {
		for _, want := range tags {
			if t == want {
				return true
			}
		}
	}

	return false
}
