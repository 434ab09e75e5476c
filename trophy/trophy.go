// Package trophy evaluates achievements and periodic goals against
// session history.
package trophy

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/timeutil"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/store"
)

// Status pairs an achievement with its unlock state.
type Status struct {
	Achievement Achievement
	Unlocked    bool
	UnlockedAt  time.Time
}

// GoalProgress reports progress towards a daily or weekly session target.
type GoalProgress struct {
	Name   string
	Done   int
	Target int
}

func (g GoalProgress) Met() bool {
	return g.Target > 0 && g.Done >= g.Target
}

// summary holds the aggregates the achievement checks read.
type summary struct {
	totalSessions int
	totalDuration time.Duration
	streakDays    int
	earliestHour  int
	latestHour    int
}

func buildSummary(sessions []*models.Session, now time.Time) summary {
	s := summary{earliestHour: 24, latestHour: -1}

	days := make(map[string]struct{})

	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}

		s.totalSessions++
		s.totalDuration += sess.Duration

		end := sess.EndTime
		if end.Hour() < s.earliestHour {
			s.earliestHour = end.Hour()
		}

		if end.Hour() > s.latestHour {
			s.latestHour = end.Hour()
		}

		days[timeutil.RoundToStart(sess.StartTime).Format(time.DateOnly)] = struct{}{}
	}

	// The streak counts consecutive days with at least one completed
	// session, ending today or yesterday so an in-progress day does not
	// break it.
	day := timeutil.RoundToStart(now)
	if _, ok := days[day.Format(time.DateOnly)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	for {
		if _, ok := days[day.Format(time.DateOnly)]; !ok {
			break
		}

		s.streakDays++

		day = day.AddDate(0, 0, -1)
	}

	return s
}

func (s summary) satisfies(a Achievement) bool {
	switch a.kind {
	case checkTotalSessions:
		return s.totalSessions >= a.threshold
	case checkTotalHours:
		return s.totalDuration >= time.Duration(a.threshold)*time.Hour
	case checkStreakDays:
		return s.streakDays >= a.threshold
	case checkBeforeHour:
		return s.totalSessions > 0 && s.earliestHour < a.threshold
	case checkAfterHour:
		return s.totalSessions > 0 && s.latestHour >= a.threshold
	}

	return false
}

// Evaluate checks the whole catalog against the provided session history.
// Achievements already present in unlocks stay unlocked regardless of the
// current history so that deleting sessions never revokes a badge.
func Evaluate(
	sessions []*models.Session,
	unlocks []*models.Unlock,
	now time.Time,
) []Status {
	prior := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		prior[u.ID] = u.UnlockedAt
	}

	sum := buildSummary(sessions, now)

	result := make([]Status, 0, len(catalog))

	for _, a := range catalog {
		st := Status{Achievement: a}

		if at, ok := prior[a.ID]; ok {
			st.Unlocked = true
			st.UnlockedAt = at
		} else if sum.satisfies(a) {
			st.Unlocked = true
			st.UnlockedAt = now
		}

		result = append(result, st)
	}

	return result
}

// Goals computes daily and weekly progress from the session history and the
// configured targets. A zero target disables the corresponding goal.
func Goals(
	sessions []*models.Session,
	settings config.Settings,
	now time.Time,
) []GoalProgress {
	dayStart := timeutil.RoundToStart(now)

	// Weeks start on Monday.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)

	var daily, weekly int

	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}

		if !sess.StartTime.Before(weekStart) {
			weekly++
		}

		if !sess.StartTime.Before(dayStart) {
			daily++
		}
	}

	var goals []GoalProgress

	if settings.DailyGoal > 0 {
		goals = append(goals, GoalProgress{
			Name:   "Daily goal",
			Done:   daily,
			Target: settings.DailyGoal,
		})
	}

	if settings.WeeklyGoal > 0 {
		goals = append(goals, GoalProgress{
			Name:   "Weekly goal",
			Done:   weekly,
			Target: settings.WeeklyGoal,
		})
	}

	return goals
}

// Show evaluates the catalog against the full session history, persists any
// newly unlocked achievements, and prints the result.
func Show(db store.DB, cfg *config.Config, w io.Writer) error {
	sessions, err := db.GetSessions(time.Time{}, time.Now(), nil)
	if err != nil {
		return err
	}

	unlocks, err := db.ListUnlocks()
	if err != nil {
		return err
	}

	now := time.Now()

	statuses := Evaluate(sessions, unlocks, now)

	known := make(map[string]struct{}, len(unlocks))
	for _, u := range unlocks {
		known[u.ID] = struct{}{}
	}

	for _, st := range statuses {
		if !st.Unlocked {
			continue
		}

		if _, ok := known[st.Achievement.ID]; ok {
			continue
		}

		err := db.SaveUnlock(&models.Unlock{
			ID:         st.Achievement.ID,
			UnlockedAt: st.UnlockedAt,
		})
		if err != nil {
			return err
		}
	}

	printGoals(Goals(sessions, cfg.Settings, now), w)
	printAchievements(statuses, w)

	return nil
}

const goalBarWidth = 20

func goalBar(g GoalProgress) string {
	filled := g.Done * goalBarWidth / g.Target
	if filled > goalBarWidth {
		filled = goalBarWidth
	}

	bar := strings.Repeat("▇", filled) + strings.Repeat("░", goalBarWidth-filled)

	if g.Met() {
		return ui.Green(bar)
	}

	return ui.Yellow(bar)
}

func printGoals(goals []GoalProgress, w io.Writer) {
	if len(goals) == 0 {
		return
	}

	fmt.Fprintln(w, ui.Highlight("Goals"))

	for _, g := range goals {
		fmt.Fprintf(
			w,
			"  %-12s %s %d/%d sessions\n",
			g.Name,
			goalBar(g),
			g.Done,
			g.Target,
		)
	}

	fmt.Fprintln(w)
}

func printAchievements(statuses []Status, w io.Writer) {
	data := make([][]string, 0, len(statuses)+1)
	data = append(
		data,
		[]string{"Achievement", "Description", "Status", "Date"},
	)

	for _, st := range statuses {
		state := ui.Red("locked")
		when := "-"

		if st.Unlocked {
			state = ui.Green("unlocked")
			when = st.UnlockedAt.Format("Jan 02, 2006")
		}

		data = append(data, []string{
			st.Achievement.Name,
			st.Achievement.Description,
			state,
			when,
		})
	}

	ui.PrintTable(data, w)
}
