// Package models defines the records persisted in the data store.
package models

import (
	"time"

	"github.com/tomate-app/tomate/internal/config"
)

type SessionTimeline struct {
	// StartTime is the start of the session including
	// the start of a paused session
	StartTime time.Time `json:"start_time"`
	// EndTime is the end of a session including
	// when a session is paused or stopped prematurely
	EndTime time.Time `json:"end_time"`
}

// Session is a finished or in-progress work or break session.
type Session struct {
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
	Name      config.SessionType `json:"name"`
	Tags      []string           `json:"tags"`
	TaskID    string             `json:"task_id,omitempty"`
	Timeline  []SessionTimeline  `json:"timeline"`
	Duration  time.Duration      `json:"duration"`
	Completed bool               `json:"completed"`
}

// TimerSnapshot is the last known timer state. It is overwritten on every
// tick while the timer is active and is the sole source of truth for
// resuming across restarts.
type TimerSnapshot struct {
	Phase                 config.SessionType `json:"phase"`
	SecondsRemaining      int                `json:"seconds_remaining"`
	Running               bool               `json:"running"`
	CompletedWorkSessions int                `json:"completed_work_sessions"`
	WrittenAt             time.Time          `json:"written_at"`
	StartTime             time.Time          `json:"start_time"`
	SessionKey            time.Time          `json:"session_key"`
	Tags                  []string           `json:"tags"`
	TaskID                string             `json:"task_id,omitempty"`
}

// Task is a unit of work that sessions may be attributed to.
type Task struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Note              string     `json:"note,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	EstimatedSessions int        `json:"estimated_sessions"`
	CompletedSessions int        `json:"completed_sessions"`
	Done              bool       `json:"done"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Event is a scheduled focus block on the calendar.
type Event struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Tags      []string      `json:"tags,omitempty"`
	TaskID    string        `json:"task_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// EndTime returns the moment a scheduled event finishes.
func (e *Event) EndTime() time.Time {
	return e.StartTime.Add(e.Duration)
}

// Overlaps reports whether two scheduled events share any span of time.
func (e *Event) Overlaps(other *Event) bool {
	return e.StartTime.Before(other.EndTime()) &&
		other.StartTime.Before(e.EndTime())
}

// Unlock records an achievement that has been earned.
type Unlock struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
