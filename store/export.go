package store

import (
	"encoding/json"
	"io"

	bolt "go.etcd.io/bbolt"
)

// archive is the JSON document produced by Export and consumed by Import.
// Bucket values are stored verbatim so a round trip is byte-exact.
type archive struct {
	Version  int                        `json:"version"`
	Sessions map[string]json.RawMessage `json:"sessions"`
	Timer    map[string]json.RawMessage `json:"timer"`
	Tasks    map[string]json.RawMessage `json:"tasks"`
	Events   map[string]json.RawMessage `json:"events"`
	Goals    map[string]json.RawMessage `json:"goals"`
}

const archiveVersion = 1

func (a *archive) bucketMap(name string) map[string]json.RawMessage {
	switch name {
	case string(sessionBucket):
		return a.Sessions
	case string(timerBucket):
		return a.Timer
	case string(taskBucket):
		return a.Tasks
	case string(eventBucket):
		return a.Events
	case string(goalBucket):
		return a.Goals
	}

	return nil
}

// Export writes the entire contents of the store as a single JSON document.
func (c *Client) Export(w io.Writer) error {
	a := &archive{
		Version:  archiveVersion,
		Sessions: make(map[string]json.RawMessage),
		Timer:    make(map[string]json.RawMessage),
		Tasks:    make(map[string]json.RawMessage),
		Events:   make(map[string]json.RawMessage),
		Goals:    make(map[string]json.RawMessage),
	}

	err := c.View(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			m := a.bucketMap(string(name))

			err := tx.Bucket(name).ForEach(func(k, v []byte) error {
				m[string(k)] = json.RawMessage(append([]byte{}, v...))
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(a)
}

// Import replaces the entire contents of the store with the records in the
// JSON document read from r. Existing data is dropped first, so a failed
// decode leaves the store untouched.
func (c *Client) Import(r io.Reader) error {
	var a archive

	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}

			b, err := tx.CreateBucket(name)
			if err != nil {
				return err
			}

			for k, v := range a.bucketMap(string(name)) {
				if err := b.Put([]byte(k), v); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
