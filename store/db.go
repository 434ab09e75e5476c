package store

import (
	"io"
	"time"

	"github.com/tomate-app/tomate/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// GetSessions returns saved sessions according to the time and tag
	// constraints
	GetSessions(
		startTime, endTime time.Time,
		tags []string,
	) ([]*models.Session, error)
	// UpdateSession updates a session. The session is created if it doesn't
	// exist already, or overwritten if it does.
	UpdateSession(sess *models.Session) error
	// DeleteSessions deletes one or more saved sessions
	DeleteSessions(sessions []*models.Session) error
	// GetSnapshot returns the persisted timer snapshot, or nil if no usable
	// snapshot exists
	GetSnapshot() (*models.TimerSnapshot, error)
	// SaveSnapshot overwrites the persisted timer snapshot
	SaveSnapshot(snap *models.TimerSnapshot) error
	// DeleteSnapshot removes the persisted timer snapshot
	DeleteSnapshot() error
	// GetTask retrieves a task by its ID, or nil if it does not exist
	GetTask(id string) (*models.Task, error)
	// ListTasks returns all stored tasks
	ListTasks() ([]*models.Task, error)
	// UpdateTask creates or overwrites a task
	UpdateTask(task *models.Task) error
	// DeleteTask removes a task
	DeleteTask(id string) error
	// ListEvents returns all scheduled events
	ListEvents() ([]*models.Event, error)
	// UpdateEvent creates or overwrites a scheduled event
	UpdateEvent(event *models.Event) error
	// DeleteEvent removes a scheduled event
	DeleteEvent(id string) error
	// ListUnlocks returns all recorded achievement unlocks
	ListUnlocks() ([]*models.Unlock, error)
	// SaveUnlock records an achievement unlock
	SaveUnlock(unlock *models.Unlock) error
	// Export writes the entire store contents as a JSON document
	Export(w io.Writer) error
	// Import replaces the entire store contents from a JSON document
	Import(r io.Reader) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
