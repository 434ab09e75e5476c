package trophy

import (
	"testing"
	"time"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

func completedSession(start time.Time, d time.Duration) *models.Session {
	return &models.Session{
		StartTime: start,
		EndTime:   start.Add(d),
		Name:      config.Work,
		Duration:  d,
		Completed: true,
	}
}

func statusByID(statuses []Status, id string) Status {
	for _, st := range statuses {
		if st.Achievement.ID == id {
			return st
		}
	}

	return Status{}
}

func TestEvaluateFirstSession(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	statuses := Evaluate(nil, nil, now)

	if statusByID(statuses, "first-session").Unlocked {
		t.Error("expected no unlocks without any sessions")
	}

	sessions := []*models.Session{
		completedSession(now.Add(-time.Hour), 25*time.Minute),
	}

	statuses = Evaluate(sessions, nil, now)

	st := statusByID(statuses, "first-session")
	if !st.Unlocked {
		t.Error("expected the first session achievement to unlock")
	}

	if !st.UnlockedAt.Equal(now) {
		t.Errorf("expected unlock time %v, got %v", now, st.UnlockedAt)
	}

	if statusByID(statuses, "sessions-25").Unlocked {
		t.Error("expected the 25 session achievement to stay locked")
	}
}

func TestEvaluateIgnoresAbandonedSessions(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	abandoned := completedSession(now.Add(-time.Hour), 25*time.Minute)
	abandoned.Completed = false

	statuses := Evaluate([]*models.Session{abandoned}, nil, now)

	if statusByID(statuses, "first-session").Unlocked {
		t.Error("expected abandoned sessions not to count")
	}
}

func TestEvaluateStreak(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	var sessions []*models.Session

	// One session per day for the last three days, ending yesterday.
	for i := 1; i <= 3; i++ {
		sessions = append(
			sessions,
			completedSession(now.AddDate(0, 0, -i), 25*time.Minute),
		)
	}

	statuses := Evaluate(sessions, nil, now)

	if !statusByID(statuses, "streak-3").Unlocked {
		t.Error("expected a 3 day streak ending yesterday to unlock")
	}

	if statusByID(statuses, "streak-7").Unlocked {
		t.Error("expected the 7 day streak to stay locked")
	}
}

func TestEvaluateBrokenStreak(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	sessions := []*models.Session{
		completedSession(now.AddDate(0, 0, -1), 25*time.Minute),
		completedSession(now.AddDate(0, 0, -2), 25*time.Minute),
		// Gap on day -3 breaks the run.
		completedSession(now.AddDate(0, 0, -4), 25*time.Minute),
	}

	statuses := Evaluate(sessions, nil, now)

	if statusByID(statuses, "streak-3").Unlocked {
		t.Error("expected a broken streak to stay locked")
	}
}

func TestEvaluateKeepsPriorUnlocks(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	earlier := now.AddDate(0, -1, 0)

	unlocks := []*models.Unlock{
		{ID: "first-session", UnlockedAt: earlier},
	}

	// No sessions at all: the badge stays unlocked with its original date.
	statuses := Evaluate(nil, unlocks, now)

	st := statusByID(statuses, "first-session")
	if !st.Unlocked {
		t.Error("expected a prior unlock to persist")
	}

	if !st.UnlockedAt.Equal(earlier) {
		t.Errorf("expected the original unlock time %v, got %v", earlier, st.UnlockedAt)
	}
}

func TestEvaluateTotalHours(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	var sessions []*models.Session

	// 24 completed sessions of 25 minutes each: 10 hours exactly.
	for i := range 24 {
		sessions = append(
			sessions,
			completedSession(
				now.Add(-time.Duration(i+1)*time.Hour),
				25*time.Minute,
			),
		)
	}

	statuses := Evaluate(sessions, nil, now)

	if !statusByID(statuses, "hours-10").Unlocked {
		t.Error("expected 10 accumulated hours to unlock")
	}

	if statusByID(statuses, "hours-100").Unlocked {
		t.Error("expected the 100 hour achievement to stay locked")
	}
}

func TestGoals(t *testing.T) {
	// A Wednesday.
	now := time.Date(2024, time.March, 6, 18, 0, 0, 0, time.UTC)

	sessions := []*models.Session{
		// Two sessions today.
		completedSession(now.Add(-2*time.Hour), 25*time.Minute),
		completedSession(now.Add(-4*time.Hour), 25*time.Minute),
		// One on Monday, still within this week.
		completedSession(now.AddDate(0, 0, -2), 25*time.Minute),
		// Last week does not count.
		completedSession(now.AddDate(0, 0, -6), 25*time.Minute),
	}

	settings := config.Settings{DailyGoal: 8, WeeklyGoal: 40}

	goals := Goals(sessions, settings, now)

	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}

	daily, weekly := goals[0], goals[1]

	if daily.Done != 2 || daily.Target != 8 {
		t.Errorf("expected daily progress 2/8, got %d/%d", daily.Done, daily.Target)
	}

	if weekly.Done != 3 || weekly.Target != 40 {
		t.Errorf("expected weekly progress 3/40, got %d/%d", weekly.Done, weekly.Target)
	}

	if daily.Met() || weekly.Met() {
		t.Error("expected neither goal to be met")
	}
}

func TestGoalsDisabledByZeroTarget(t *testing.T) {
	now := time.Date(2024, time.March, 6, 18, 0, 0, 0, time.UTC)

	goals := Goals(nil, config.Settings{}, now)

	if len(goals) != 0 {
		t.Errorf("expected no goals with zero targets, got %d", len(goals))
	}
}
