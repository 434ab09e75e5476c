package timer

import (
	"time"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

// newSession initialises a session record for the given phase.
func (t *Timer) newSession(
	name config.SessionType,
	startTime time.Time,
) *models.Session {
	return &models.Session{
		Name:      name,
		Duration:  t.Opts.Duration(name),
		Tags:      t.Opts.Tags,
		TaskID:    t.taskID,
		StartTime: startTime,
		EndTime:   startTime.Add(t.Opts.Duration(name)),
		Timeline: []models.SessionTimeline{
			{
				StartTime: startTime,
			},
		},
	}
}

// sliceEndTime recomputes the session end time after a pause or resume and
// opens a new timeline slice.
func (t *Timer) sliceEndTime(sess *models.Session, now time.Time) {
	elapsed := sessionElapsed(sess)

	end := now.Add(sess.Duration - elapsed)

	sess.EndTime = end

	sess.Timeline = append(sess.Timeline, models.SessionTimeline{
		StartTime: now,
		EndTime:   end,
	})
}

// closeTimeline seals the open timeline slice at the given moment.
func closeTimeline(sess *models.Session, now time.Time) {
	if len(sess.Timeline) == 0 {
		return
	}

	last := len(sess.Timeline) - 1
	if sess.Timeline[last].EndTime.IsZero() ||
		sess.Timeline[last].EndTime.After(now) {
		sess.Timeline[last].EndTime = now
	}

	sess.EndTime = now
}

// sessionElapsed returns the total time the session has been actively
// counting down across all its timeline slices.
func sessionElapsed(sess *models.Session) time.Duration {
	var elapsed time.Duration

	for _, v := range sess.Timeline {
		if v.EndTime.IsZero() {
			continue
		}

		elapsed += v.EndTime.Sub(v.StartTime)
	}

	return elapsed
}
