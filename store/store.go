// Package store connects to the data store and manages timers, sessions,
// tasks, scheduled events, and achievements
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/timeutil"
)

var pathToDB string

var errAlreadyRunning = errors.New(
	"is tomate already running? Only one instance can be active at a time",
)

var (
	sessionBucket = []byte("sessions")
	timerBucket   = []byte("timer")
	taskBucket    = []byte("tasks")
	eventBucket   = []byte("events")
	goalBucket    = []byte("goals")
)

// snapshotKey is the fixed key the timer snapshot lives under. The snapshot
// is overwritten in place, never appended.
var snapshotKey = []byte("current")

var allBuckets = [][]byte{
	sessionBucket,
	timerBucket,
	taskBucket,
	eventBucket,
	goalBucket,
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) UpdateSession(sess *models.Session) error {
	key := timeutil.ToKey(sess.StartTime)

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(key, value)
	})
}

func (c *Client) GetSessions(
	startTime, endTime time.Time,
	tags []string,
) ([]*models.Session, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(sessionBucket).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		sk, sv := cur.Seek(min)
		// check if the preceding session was still in progress within the
		// requested bounds
		pk, pv := cur.Prev()
		if pk != nil {
			var sess models.Session

			err := json.Unmarshal(pv, &sess)
			if err != nil {
				return err
			}

			if sess.EndTime.After(startTime) {
				sk, sv = pk, pv
			} else {
				sk, sv = cur.Next()
			}
		} else {
			sk, sv = cur.Seek(min)
		}

		for k, v := sk, sv; k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			if len(tags) != 0 {
				var sess models.Session

				err := json.Unmarshal(v, &sess)
				if err != nil {
					return err
				}

				for _, t := range sess.Tags {
					if slices.Contains(tags, t) {
						b = append(b, v)
						break
					}
				}
			} else {
				b = append(b, v)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(b))

	for _, v := range b {
		sess := &models.Session{}

		err = json.Unmarshal(v, sess)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, sess)
	}

	return sessions, nil
}

func (c *Client) DeleteSessions(sessions []*models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range sessions {
			key := timeutil.ToKey(sessions[i].StartTime)

			err := tx.Bucket(sessionBucket).Delete(key)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// GetSnapshot reads the persisted timer snapshot. A missing or malformed
// snapshot yields nil so the caller falls back to defaults.
func (c *Client) GetSnapshot() (*models.TimerSnapshot, error) {
	var snap *models.TimerSnapshot

	err := c.View(func(tx *bolt.Tx) error {
		snapBytes := tx.Bucket(timerBucket).Get(snapshotKey)
		if len(snapBytes) == 0 {
			return nil
		}

		var s models.TimerSnapshot

		if err := json.Unmarshal(snapBytes, &s); err != nil {
			return nil
		}

		snap = &s

		return nil
	})

	return snap, err
}

func (c *Client) SaveSnapshot(snap *models.TimerSnapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).Put(snapshotKey, value)
	})
}

func (c *Client) DeleteSnapshot() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).Delete(snapshotKey)
	})
}

func (c *Client) GetTask(id string) (*models.Task, error) {
	var task *models.Task

	err := c.View(func(tx *bolt.Tx) error {
		taskBytes := tx.Bucket(taskBucket).Get([]byte(id))
		if len(taskBytes) == 0 {
			return nil
		}

		var t models.Task

		if err := json.Unmarshal(taskBytes, &t); err != nil {
			return err
		}

		task = &t

		return nil
	})

	return task, err
}

func (c *Client) ListTasks() ([]*models.Task, error) {
	var tasks []*models.Task

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(taskBucket).ForEach(func(_, v []byte) error {
			task := &models.Task{}

			if err := json.Unmarshal(v, task); err != nil {
				return err
			}

			tasks = append(tasks, task)

			return nil
		})
	})

	return tasks, err
}

func (c *Client) UpdateTask(task *models.Task) error {
	value, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(taskBucket).Put([]byte(task.ID), value)
	})
}

func (c *Client) DeleteTask(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(taskBucket).Delete([]byte(id))
	})
}

func (c *Client) ListEvents() ([]*models.Event, error) {
	var events []*models.Event

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(eventBucket).ForEach(func(_, v []byte) error {
			event := &models.Event{}

			if err := json.Unmarshal(v, event); err != nil {
				return err
			}

			events = append(events, event)

			return nil
		})
	})

	return events, err
}

func (c *Client) UpdateEvent(event *models.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(eventBucket).Put([]byte(event.ID), value)
	})
}

func (c *Client) DeleteEvent(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(eventBucket).Delete([]byte(id))
	})
}

func (c *Client) ListUnlocks() ([]*models.Unlock, error) {
	var unlocks []*models.Unlock

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(goalBucket).ForEach(func(_, v []byte) error {
			unlock := &models.Unlock{}

			if err := json.Unmarshal(v, unlock); err != nil {
				return err
			}

			unlocks = append(unlocks, unlock)

			return nil
		})
	})

	return unlocks, err
}

func (c *Client) SaveUnlock(unlock *models.Unlock) error {
	value, err := json.Marshal(unlock)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(goalBucket).Put([]byte(unlock.ID), value)
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// a second instance times out waiting for the file lock held by
		// the first
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist
	// already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			_, err := tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
