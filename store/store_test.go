package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	bolt "go.etcd.io/bbolt"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "tomate.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestNewClientWhileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomate.db")

	first, err := NewClient(path)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	defer first.Close()

	// the second open times out waiting for the file lock
	_, err = NewClient(path)
	if !errors.Is(err, errAlreadyRunning) {
		t.Fatalf("expected the already running error, got %v", err)
	}
}

func testSession(start time.Time, tags []string) *models.Session {
	return &models.Session{
		StartTime: start,
		EndTime:   start.Add(25 * time.Minute),
		Name:      config.Work,
		Tags:      tags,
		Timeline: []models.SessionTimeline{
			{StartTime: start, EndTime: start.Add(25 * time.Minute)},
		},
		Duration:  25 * time.Minute,
		Completed: true,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestClient(t)

	snap, err := c.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if snap != nil {
		t.Fatalf("expected no snapshot in a fresh store, got: %v", snap)
	}

	want := &models.TimerSnapshot{
		Phase:                 config.ShortBreak,
		SecondsRemaining:      120,
		Running:               true,
		CompletedWorkSessions: 3,
		WrittenAt:             time.Now().Truncate(time.Second),
		StartTime:             time.Now().Add(-time.Hour).Truncate(time.Second),
		Tags:                  []string{"writing"},
	}

	if err = c.SaveSnapshot(want); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot did not survive a round trip (-want +got):\n%s", diff)
	}

	if err = c.DeleteSnapshot(); err != nil {
		t.Fatal(err)
	}

	got, err = c.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if got != nil {
		t.Errorf("expected snapshot to be deleted, got: %v", got)
	}
}

func TestSnapshotOverwritesInPlace(t *testing.T) {
	c := newTestClient(t)

	for i := 1; i <= 3; i++ {
		err := c.SaveSnapshot(&models.TimerSnapshot{
			Phase:            config.Work,
			SecondsRemaining: i,
			WrittenAt:        time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	var count int

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}

	if count != 1 {
		t.Errorf("expected exactly one snapshot record, got %d", count)
	}

	snap, err := c.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if snap.SecondsRemaining != 3 {
		t.Errorf(
			"expected the latest snapshot to win, got remaining: %d",
			snap.SecondsRemaining,
		)
	}
}

func TestMalformedSnapshotIsIgnored(t *testing.T) {
	c := newTestClient(t)

	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).Put(snapshotKey, []byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}

	snap, err := c.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if snap != nil {
		t.Errorf("expected a malformed snapshot to yield nil, got: %v", snap)
	}
}

func TestGetSessionsTimeBounds(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i := range 5 {
		sess := testSession(base.AddDate(0, 0, i), nil)

		if err := c.UpdateSession(sess); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := c.GetSessions(
		base.AddDate(0, 0, 1),
		base.AddDate(0, 0, 3),
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions in range, got %d", len(sessions))
	}

	for _, sess := range sessions {
		if sess.StartTime.Before(base.AddDate(0, 0, 1)) ||
			sess.StartTime.After(base.AddDate(0, 0, 3)) {
			t.Errorf("session outside requested bounds: %v", sess.StartTime)
		}
	}
}

func TestGetSessionsTagFilter(t *testing.T) {
	c := newTestClient(t)

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	tagged := []struct {
		tags []string
	}{
		{[]string{"writing"}},
		{[]string{"coding"}},
		{[]string{"writing", "coding"}},
		{nil},
	}

	for i, tc := range tagged {
		sess := testSession(base.Add(time.Duration(i)*time.Hour), tc.tags)

		if err := c.UpdateSession(sess); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := c.GetSessions(
		base,
		base.Add(24*time.Hour),
		[]string{"writing"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions tagged 'writing', got %d", len(sessions))
	}
}

func TestTaskRoundTrip(t *testing.T) {
	c := newTestClient(t)

	want := &models.Task{
		ID:                "b3f2a6de-0001-4000-8000-000000000001",
		Name:              "Write the report",
		Tags:              []string{"writing"},
		EstimatedSessions: 4,
		CreatedAt:         time.Now().Truncate(time.Second),
	}

	if err := c.UpdateTask(want); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetTask(want.ID)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("task did not survive a round trip (-want +got):\n%s", diff)
	}

	if err = c.DeleteTask(want.ID); err != nil {
		t.Fatal(err)
	}

	got, err = c.GetTask(want.ID)
	if err != nil {
		t.Fatal(err)
	}

	if got != nil {
		t.Errorf("expected task to be deleted, got: %v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestClient(t)

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	sess := testSession(base, []string{"writing"})
	if err := src.UpdateSession(sess); err != nil {
		t.Fatal(err)
	}

	tsk := &models.Task{
		ID:        "b3f2a6de-0001-4000-8000-000000000002",
		Name:      "Review pull requests",
		CreatedAt: base,
	}
	if err := src.UpdateTask(tsk); err != nil {
		t.Fatal(err)
	}

	unlock := &models.Unlock{ID: "first-session", UnlockedAt: base}
	if err := src.SaveUnlock(unlock); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	if err := src.Export(&buf); err != nil {
		t.Fatal(err)
	}

	dst := newTestClient(t)

	if err := dst.Import(&buf); err != nil {
		t.Fatal(err)
	}

	sessions, err := dst.GetSessions(base.Add(-time.Hour), base.Add(time.Hour), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 1 {
		t.Fatalf("expected 1 imported session, got %d", len(sessions))
	}

	if diff := cmp.Diff(sess, sessions[0]); diff != "" {
		t.Errorf("imported session mismatch (-want +got):\n%s", diff)
	}

	gotTask, err := dst.GetTask(tsk.ID)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(tsk, gotTask); diff != "" {
		t.Errorf("imported task mismatch (-want +got):\n%s", diff)
	}

	unlocks, err := dst.ListUnlocks()
	if err != nil {
		t.Fatal(err)
	}

	if len(unlocks) != 1 || unlocks[0].ID != unlock.ID {
		t.Errorf("expected imported unlock %q, got: %v", unlock.ID, unlocks)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	c := newTestClient(t)

	sess := testSession(time.Now(), nil)
	if err := c.UpdateSession(sess); err != nil {
		t.Fatal(err)
	}

	err := c.Import(bytes.NewBufferString("not a json document"))
	if err == nil {
		t.Fatal("expected an error importing garbage data")
	}

	sessions, err := c.GetSessions(time.Time{}, time.Now().Add(time.Hour), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 1 {
		t.Errorf("expected existing data to survive a failed import")
	}
}
