package timer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

var defaultCycle = CycleConfig{
	WorkDuration:       25 * time.Minute,
	ShortBreakDuration: 5 * time.Minute,
	LongBreakDuration:  15 * time.Minute,
	LongBreakInterval:  4,
}

func snapshotAt(
	phase config.SessionType,
	remaining int,
	running bool,
	sessions int,
	writtenAt time.Time,
) *models.TimerSnapshot {
	return &models.TimerSnapshot{
		Phase:                 phase,
		SecondsRemaining:      remaining,
		Running:               running,
		CompletedWorkSessions: sessions,
		WrittenAt:             writtenAt,
	}
}

func TestReconcile(t *testing.T) {
	writtenAt := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		snap    *models.TimerSnapshot
		cycle   CycleConfig
		elapsed time.Duration
		want    Reconciliation
	}{
		{
			name: "paused snapshot is returned unchanged",
			snap: snapshotAt(config.ShortBreak, 120, false, 2, writtenAt),
			elapsed: 48 * time.Hour,
			want: Reconciliation{
				Phase:                 config.ShortBreak,
				SecondsRemaining:      120,
				Running:               false,
				CompletedWorkSessions: 2,
			},
		},
		{
			name: "running snapshot with zero elapsed time is unchanged",
			snap: snapshotAt(config.Work, 900, true, 1, writtenAt),
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      900,
				Running:               true,
				CompletedWorkSessions: 1,
			},
		},
		{
			name:    "phase still in progress",
			snap:    snapshotAt(config.Work, 900, true, 1, writtenAt),
			elapsed: 5 * time.Minute,
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      600,
				Running:               true,
				CompletedWorkSessions: 1,
			},
		},
		{
			name:    "work completes into a short break",
			snap:    snapshotAt(config.Work, 10, true, 0, writtenAt),
			elapsed: 20 * time.Second,
			want: Reconciliation{
				Phase:                 config.ShortBreak,
				SecondsRemaining:      290,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    1,
			},
		},
		{
			name:    "multiple phases elapse across a long break",
			snap:    snapshotAt(config.Work, 5, true, 3, writtenAt),
			elapsed: 3005 * time.Second,
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      1200,
				Running:               true,
				CompletedWorkSessions: 5,
				CompletedWhileAway:    3,
			},
		},
		{
			name:    "elapsed lands exactly on a phase boundary",
			snap:    snapshotAt(config.Work, 60, true, 0, writtenAt),
			elapsed: time.Minute,
			want: Reconciliation{
				Phase:                 config.ShortBreak,
				SecondsRemaining:      300,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    1,
			},
		},
		{
			name:    "fourth completed work session triggers a long break",
			snap:    snapshotAt(config.Work, 30, true, 3, writtenAt),
			elapsed: 40 * time.Second,
			want: Reconciliation{
				Phase:                 config.LongBreak,
				SecondsRemaining:      890,
				Running:               true,
				CompletedWorkSessions: 4,
				CompletedWhileAway:    1,
			},
		},
		{
			name:    "break always advances to work",
			snap:    snapshotAt(config.LongBreak, 60, true, 4, writtenAt),
			elapsed: 90 * time.Second,
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      1470,
				Running:               true,
				CompletedWorkSessions: 4,
			},
		},
		{
			name:    "clock skew counts as zero elapsed time",
			snap:    snapshotAt(config.Work, 600, true, 2, writtenAt),
			elapsed: -10 * time.Minute,
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      600,
				Running:               true,
				CompletedWorkSessions: 2,
			},
		},
		{
			name:    "negative remaining time is clamped",
			snap:    snapshotAt(config.Work, -30, true, 0, writtenAt),
			elapsed: 10 * time.Second,
			want: Reconciliation{
				Phase:                 config.ShortBreak,
				SecondsRemaining:      290,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    1,
			},
		},
		{
			name: "zero-length short break is skipped over",
			snap: snapshotAt(config.Work, 10, true, 0, writtenAt),
			cycle: CycleConfig{
				WorkDuration:      25 * time.Minute,
				LongBreakDuration: 15 * time.Minute,
				LongBreakInterval: 4,
			},
			elapsed: 20 * time.Second,
			want: Reconciliation{
				Phase:                 config.Work,
				SecondsRemaining:      1490,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    2,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cycle := tc.cycle
			if cycle == (CycleConfig{}) {
				cycle = defaultCycle
			}

			got := Reconcile(tc.snap, cycle, writtenAt.Add(tc.elapsed))

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected reconciliation (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileAllZeroDurationsTerminates(t *testing.T) {
	writtenAt := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := snapshotAt(config.Work, 0, true, 0, writtenAt)

	testCases := []struct {
		name  string
		cycle CycleConfig
		want  Reconciliation
	}{
		{
			name:  "every phase has zero length",
			cycle: CycleConfig{LongBreakInterval: 4},
			want: Reconciliation{
				Phase:                 config.ShortBreak,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    1,
			},
		},
		{
			// with an interval of one every break is a long break, so the
			// short break duration can never consume any time
			name: "only an unscheduled phase has length",
			cycle: CycleConfig{
				ShortBreakDuration: 5 * time.Minute,
				LongBreakInterval:  1,
			},
			want: Reconciliation{
				Phase:                 config.LongBreak,
				Running:               true,
				CompletedWorkSessions: 1,
				CompletedWhileAway:    1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(snap, tc.cycle, writtenAt.Add(time.Hour))

			// only the phase in progress completes: the remaining idle
			// time cannot be attributed to any phase
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected reconciliation (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileMonotonicWithinPhase(t *testing.T) {
	writtenAt := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := snapshotAt(config.Work, 120, true, 0, writtenAt)

	prev := Reconcile(snap, defaultCycle, writtenAt)

	for elapsed := 1; elapsed < 120; elapsed++ {
		got := Reconcile(
			snap,
			defaultCycle,
			writtenAt.Add(time.Duration(elapsed)*time.Second),
		)

		if got.Phase != config.Work {
			t.Fatalf(
				"phase changed to %s before the boundary at %ds",
				got.Phase,
				elapsed,
			)
		}

		if got.SecondsRemaining >= prev.SecondsRemaining {
			t.Fatalf(
				"remaining time did not decrease at %ds: %d -> %d",
				elapsed,
				prev.SecondsRemaining,
				got.SecondsRemaining,
			)
		}

		prev = got
	}

	// crossing the boundary resets to the next phase's duration
	got := Reconcile(snap, defaultCycle, writtenAt.Add(120*time.Second))

	if got.Phase != config.ShortBreak || got.SecondsRemaining != 300 {
		t.Errorf(
			"expected a fresh short break after the boundary, got %s with %ds",
			got.Phase,
			got.SecondsRemaining,
		)
	}
}

func TestReconcileConservesElapsedTime(t *testing.T) {
	writtenAt := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := snapshotAt(config.Work, 5, true, 3, writtenAt)

	// initial remainder, long break, work, short break, then 300s into the
	// next work session
	elapsed := 5 + 900 + 1500 + 300 + 300

	got := Reconcile(
		snap,
		defaultCycle,
		writtenAt.Add(time.Duration(elapsed)*time.Second),
	)

	consumed := elapsed - (defaultCycle.Seconds(got.Phase) - got.SecondsRemaining)

	if consumed != 5+900+1500+300 {
		t.Errorf(
			"consumed time does not reconstruct elapsed time: got %d",
			consumed,
		)
	}
}

func TestNextPhase(t *testing.T) {
	testCases := []struct {
		name          string
		current       config.SessionType
		completedWork int
		want          config.SessionType
	}{
		{
			name:          "first work session leads to a short break",
			current:       config.Work,
			completedWork: 1,
			want:          config.ShortBreak,
		},
		{
			name:          "third work session leads to a short break",
			current:       config.Work,
			completedWork: 3,
			want:          config.ShortBreak,
		},
		{
			name:          "fourth work session leads to a long break",
			current:       config.Work,
			completedWork: 4,
			want:          config.LongBreak,
		},
		{
			name:          "eighth work session leads to a long break",
			current:       config.Work,
			completedWork: 8,
			want:          config.LongBreak,
		},
		{
			name:          "short break leads to work",
			current:       config.ShortBreak,
			completedWork: 2,
			want:          config.Work,
		},
		{
			name:          "long break leads to work",
			current:       config.LongBreak,
			completedWork: 4,
			want:          config.Work,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := defaultCycle.NextPhase(tc.current, tc.completedWork)

			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
