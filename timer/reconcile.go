package timer

import (
	"time"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

// CycleConfig holds the durations that drive the work/break cycle.
type CycleConfig struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakInterval  int
}

// NewCycleConfig extracts the cycle settings from the program config.
func NewCycleConfig(cfg *config.Config) CycleConfig {
	return CycleConfig{
		WorkDuration:       cfg.Work.Duration,
		ShortBreakDuration: cfg.ShortBreak.Duration,
		LongBreakDuration:  cfg.LongBreak.Duration,
		LongBreakInterval:  cfg.Settings.LongBreakInterval,
	}
}

// Seconds returns the whole-second duration of the given phase.
func (c CycleConfig) Seconds(phase config.SessionType) int {
	var d time.Duration

	switch phase {
	case config.Work:
		d = c.WorkDuration
	case config.ShortBreak:
		d = c.ShortBreakDuration
	case config.LongBreak:
		d = c.LongBreakDuration
	}

	if d < 0 {
		return 0
	}

	return int(d / time.Second)
}

// NextPhase applies the cycle rule: a break is always followed by work, and
// work is followed by a long break once every LongBreakInterval completed
// work sessions. completedWork must already include the work session that
// just finished.
func (c CycleConfig) NextPhase(
	current config.SessionType,
	completedWork int,
) config.SessionType {
	if current != config.Work {
		return config.Work
	}

	if c.LongBreakInterval > 0 && completedWork > 0 &&
		completedWork%c.LongBreakInterval == 0 {
		return config.LongBreak
	}

	return config.ShortBreak
}

// Reconciliation is the live timer state recomputed from a stale snapshot.
type Reconciliation struct {
	Phase                 config.SessionType
	SecondsRemaining      int
	Running               bool
	CompletedWorkSessions int
	// CompletedWhileAway counts the focus sessions that finished while the
	// program was not running, for the resumption notice.
	CompletedWhileAway int
}

// Reconcile determines what the timer state should be at the wall-clock
// time now, given the last persisted snapshot: the result is
// indistinguishable from the timer having kept counting down in the
// background the whole time.
//
// It is a pure function of its inputs and cannot fail. A paused snapshot is
// returned as-is. A running snapshot has the elapsed wall-clock time
// deducted from it, completing as many whole phases as that time covers and
// advancing through the cycle accordingly. Wall clocks are not monotonic
// across sleep/wake, so a snapshot from the future counts as zero elapsed
// time rather than an error.
func Reconcile(
	snap *models.TimerSnapshot,
	cycle CycleConfig,
	now time.Time,
) Reconciliation {
	remaining := snap.SecondsRemaining
	if remaining < 0 {
		remaining = 0
	}

	res := Reconciliation{
		Phase:                 snap.Phase,
		SecondsRemaining:      remaining,
		Running:               snap.Running,
		CompletedWorkSessions: snap.CompletedWorkSessions,
	}

	if !snap.Running {
		return res
	}

	elapsed := int(now.Sub(snap.WrittenAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed < remaining {
		res.SecondsRemaining = remaining - elapsed
		return res
	}

	overflow := elapsed - remaining
	phase := snap.Phase
	sessions := snap.CompletedWorkSessions

	complete := func(p config.SessionType) {
		if p == config.Work {
			sessions++
		}

		// long breaks are downtime, not sessions the user would want
		// counted in the resumption notice
		if p != config.LongBreak {
			res.CompletedWhileAway++
		}
	}

	// The phase that was in progress when the snapshot was written has
	// fully elapsed.
	complete(phase)
	phase = cycle.NextPhase(phase, sessions)

	// Zero-length phases complete without consuming any overflow. If every
	// phase the cycle rule can schedule has zero length the loop below
	// would spin forever, so stop at the phase that follows the one in
	// progress without completing anything further. With a positive
	// interval one full round visits the long break once, the work phase
	// interval times and the short break the remaining times; otherwise
	// the long break is never scheduled at all.
	roundSeconds := cycle.Seconds(config.Work) + cycle.Seconds(config.ShortBreak)
	if cycle.LongBreakInterval > 0 {
		roundSeconds = cycle.LongBreakInterval*cycle.Seconds(config.Work) +
			(cycle.LongBreakInterval-1)*cycle.Seconds(config.ShortBreak) +
			cycle.Seconds(config.LongBreak)
	}

	if roundSeconds == 0 {
		res.Phase = phase
		res.CompletedWorkSessions = sessions
		res.SecondsRemaining = 0

		return res
	}

	for overflow >= cycle.Seconds(phase) {
		overflow -= cycle.Seconds(phase)

		complete(phase)
		phase = cycle.NextPhase(phase, sessions)
	}

	res.Phase = phase
	res.CompletedWorkSessions = sessions

	res.SecondsRemaining = cycle.Seconds(phase) - overflow
	if res.SecondsRemaining < 0 {
		res.SecondsRemaining = 0
	}

	return res
}
