package task_test

import (
	"testing"

	"github.com/tomate-app/tomate/internal/testutil"
	"github.com/tomate-app/tomate/task"
)

func TestAddRejectsEmptyName(t *testing.T) {
	db := testutil.NewStore(t)

	_, err := task.Add(db, "   ", "", nil, 0)
	if err == nil {
		t.Fatal("expected an error adding a task with an empty name")
	}
}

func TestFind(t *testing.T) {
	db := testutil.NewStore(t)

	created, err := task.Add(db, "Write the report", "", []string{"writing"}, 4)
	if err != nil {
		t.Fatal(err)
	}

	other, err := task.Add(db, "Review pull requests", "", nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		ref  string
		want string
	}{
		{name: "full ID", ref: created.ID, want: created.ID},
		{name: "ID prefix", ref: created.ID[:8], want: created.ID},
		{name: "exact name", ref: "Review pull requests", want: other.ID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, findErr := task.Find(db, tc.ref)
			if findErr != nil {
				t.Fatal(findErr)
			}

			if got.ID != tc.want {
				t.Errorf("expected task %s, got %s", tc.want, got.ID)
			}
		})
	}

	t.Run("unknown reference", func(t *testing.T) {
		_, findErr := task.Find(db, "no-such-task")
		if findErr == nil {
			t.Fatal("expected an error for an unknown reference")
		}
	})

	t.Run("ambiguous empty prefix", func(t *testing.T) {
		_, findErr := task.Find(db, "")
		if findErr == nil {
			t.Fatal("expected an error for an ambiguous reference")
		}
	})
}

func TestDone(t *testing.T) {
	db := testutil.NewStore(t)

	created, err := task.Add(db, "Write the report", "", nil, 2)
	if err != nil {
		t.Fatal(err)
	}

	done, err := task.Done(db, created.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !done.Done || done.CompletedAt == nil {
		t.Error("expected the task to be marked completed")
	}

	stored, err := db.GetTask(created.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !stored.Done {
		t.Error("expected the completion to be persisted")
	}
}

func TestEdit(t *testing.T) {
	db := testutil.NewStore(t)

	created, err := task.Add(db, "Write the report", "old note", nil, 2)
	if err != nil {
		t.Fatal(err)
	}

	name := "Write the quarterly report"
	estimate := 6

	edited, err := task.Edit(db, created.ID, task.EditOpts{
		Name:     &name,
		Estimate: &estimate,
	})
	if err != nil {
		t.Fatal(err)
	}

	if edited.Name != name {
		t.Errorf("expected name %q, got %q", name, edited.Name)
	}

	if edited.EstimatedSessions != estimate {
		t.Errorf("expected estimate %d, got %d", estimate, edited.EstimatedSessions)
	}

	if edited.Note != "old note" {
		t.Errorf("expected untouched fields to be preserved, got note %q", edited.Note)
	}

	empty := "  "

	_, err = task.Edit(db, created.ID, task.EditOpts{Name: &empty})
	if err == nil {
		t.Error("expected an error renaming a task to an empty name")
	}
}

func TestDel(t *testing.T) {
	db := testutil.NewStore(t)

	created, err := task.Add(db, "Write the report", "", nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err = task.Del(db, created.ID); err != nil {
		t.Fatal(err)
	}

	_, err = task.Find(db, created.ID)
	if err == nil {
		t.Fatal("expected the deleted task to be unfindable")
	}
}
