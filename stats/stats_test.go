package stats

import (
	"testing"
	"time"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

func span(start time.Time, d time.Duration) models.SessionTimeline {
	return models.SessionTimeline{
		StartTime: start,
		EndTime:   start.Add(d),
	}
}

func reportFor(start, end time.Time) *Report {
	return NewReport(config.FilterConfig{
		StartTime: start,
		EndTime:   end,
	})
}

func TestComputeTotals(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	r := reportFor(start, end)

	sessions := []*models.Session{
		{
			StartTime: start.Add(9 * time.Hour),
			EndTime:   start.Add(9*time.Hour + 25*time.Minute),
			Tags:      []string{"writing"},
			Timeline: []models.SessionTimeline{
				span(start.Add(9*time.Hour), 25*time.Minute),
			},
			Completed: true,
		},
		{
			StartTime: start.Add(34 * time.Hour),
			EndTime:   start.Add(34*time.Hour + 10*time.Minute),
			Timeline: []models.SessionTimeline{
				span(start.Add(34*time.Hour), 10*time.Minute),
			},
			Completed: false,
		},
	}

	totals := r.computeTotals(sessions)

	if totals.completed != 1 {
		t.Errorf("expected 1 completed session, got %d", totals.completed)
	}

	if totals.abandoned != 1 {
		t.Errorf("expected 1 abandoned session, got %d", totals.abandoned)
	}

	want := 35 * time.Minute
	if totals.totalTime != want {
		t.Errorf("expected total time %v, got %v", want, totals.totalTime)
	}

	if totals.tags["writing"] != 25*time.Minute {
		t.Errorf(
			"expected 25m for the writing tag, got %v",
			totals.tags["writing"],
		)
	}

	if totals.tags["uncategorized"] != 10*time.Minute {
		t.Errorf(
			"expected untagged time to be uncategorized, got %v",
			totals.tags["uncategorized"],
		)
	}
}

func TestSessionDurationClampsToBounds(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	r := reportFor(start, end)

	// The session starts an hour before the reporting window opens.
	sess := &models.Session{
		StartTime: start.Add(-time.Hour),
		EndTime:   start.Add(time.Hour),
		Timeline: []models.SessionTimeline{
			span(start.Add(-time.Hour), 2*time.Hour),
		},
	}

	got := r.sessionDuration(sess)

	if got > time.Hour+time.Minute || got < time.Hour-time.Minute {
		t.Errorf("expected roughly one in-bounds hour, got %v", got)
	}
}

func TestComputeAggregatesHourly(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	r := reportFor(start, end)

	sessions := []*models.Session{
		{
			StartTime: start.Add(9*time.Hour + 5*time.Minute),
			EndTime:   start.Add(9*time.Hour + 30*time.Minute),
			Timeline: []models.SessionTimeline{
				span(start.Add(9*time.Hour+5*time.Minute), 25*time.Minute),
			},
			Completed: true,
		},
	}

	aggr := r.computeAggregates(sessions)

	if aggr.hourly[9] != 25*time.Minute {
		t.Errorf("expected 25m in the 09:00 bucket, got %v", aggr.hourly[9])
	}

	if aggr.hourly[10] != 0 {
		t.Errorf("expected nothing in the 10:00 bucket, got %v", aggr.hourly[10])
	}

	weekday := int(start.Weekday())
	if aggr.weekly[weekday] != 25*time.Minute {
		t.Errorf(
			"expected 25m on weekday %d, got %v",
			weekday,
			aggr.weekly[weekday],
		)
	}
}

func TestFilterSessions(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	sessions := []*models.Session{
		{StartTime: start, EndTime: start.Add(25 * time.Minute)},
		{StartTime: start},
		{StartTime: start, EndTime: start.Add(-time.Minute)},
	}

	got := filterSessions(sessions)

	if len(got) != 1 {
		t.Errorf("expected 1 valid session, got %d", len(got))
	}
}
