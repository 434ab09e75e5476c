// Package task manages the list of tasks that focus sessions are
// attributed to
package task

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/store"
)

var (
	errTaskNotFound = errors.New(
		"task not found: use 'tomate task list' to see available tasks",
	)

	errAmbiguousTask = errors.New(
		"more than one task matches: use a longer ID prefix",
	)

	errEmptyName = errors.New("the task name cannot be empty")
)

// shortIDLen is how much of a task UUID is shown in listings. A prefix of
// this length is enough to address a task unambiguously in practice.
const shortIDLen = 8

// Add creates a new task.
func Add(
	db store.DB,
	name, note string,
	tags []string,
	estimate int,
) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errEmptyName
	}

	t := &models.Task{
		ID:                uuid.NewString(),
		Name:              name,
		Note:              note,
		Tags:              tags,
		EstimatedSessions: estimate,
		CreatedAt:         time.Now(),
	}

	if err := db.UpdateTask(t); err != nil {
		return nil, err
	}

	return t, nil
}

// Find resolves a task from an ID, an ID prefix, or an exact name.
func Find(db store.DB, ref string) (*models.Task, error) {
	ref = strings.TrimSpace(ref)

	t, err := db.GetTask(ref)
	if err != nil {
		return nil, err
	}

	if t != nil {
		return t, nil
	}

	tasks, err := db.ListTasks()
	if err != nil {
		return nil, err
	}

	var matches []*models.Task

	for _, v := range tasks {
		if strings.HasPrefix(v.ID, ref) || v.Name == ref {
			matches = append(matches, v)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errTaskNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, errAmbiguousTask
	}
}

// Done marks a task as completed.
func Done(db store.DB, ref string) (*models.Task, error) {
	t, err := Find(db, ref)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	t.Done = true
	t.CompletedAt = &now

	return t, db.UpdateTask(t)
}

// EditOpts holds the task fields that may be changed after creation. Nil
// means leave unchanged.
type EditOpts struct {
	Name     *string
	Note     *string
	Tags     []string
	Estimate *int
}

// Edit updates a task in place.
func Edit(db store.DB, ref string, opts EditOpts) (*models.Task, error) {
	t, err := Find(db, ref)
	if err != nil {
		return nil, err
	}

	if opts.Name != nil {
		name := strings.TrimSpace(*opts.Name)
		if name == "" {
			return nil, errEmptyName
		}

		t.Name = name
	}

	if opts.Note != nil {
		t.Note = *opts.Note
	}

	if opts.Tags != nil {
		t.Tags = opts.Tags
	}

	if opts.Estimate != nil {
		t.EstimatedSessions = *opts.Estimate
	}

	return t, db.UpdateTask(t)
}

// Del permanently removes a task.
func Del(db store.DB, ref string) error {
	t, err := Find(db, ref)
	if err != nil {
		return err
	}

	return db.DeleteTask(t.ID)
}

// List writes a table of tasks in natural name order. Completed tasks are
// hidden unless all is true.
func List(db store.DB, all bool, w io.Writer) error {
	tasks, err := db.ListTasks()
	if err != nil {
		return err
	}

	if !all {
		open := tasks[:0]

		for _, t := range tasks {
			if !t.Done {
				open = append(open, t)
			}
		}

		tasks = open
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return nil
	}

	sort.Slice(tasks, func(i, j int) bool {
		return natural.Less(tasks[i].Name, tasks[j].Name)
	})

	tableBody := make([][]string, 0, len(tasks)+1)

	tableBody = append(tableBody, []string{
		"ID",
		"NAME",
		"SESSIONS",
		"TAGS",
		"STATUS",
	})

	for _, t := range tasks {
		status := "open"
		if t.Done {
			status = "done"
		}

		progress := fmt.Sprintf("%d", t.CompletedSessions)
		if t.EstimatedSessions > 0 {
			progress = fmt.Sprintf(
				"%d/%d",
				t.CompletedSessions,
				t.EstimatedSessions,
			)
		}

		tableBody = append(tableBody, []string{
			t.ID[:shortIDLen],
			t.Name,
			progress,
			strings.Join(t.Tags, ", "),
			status,
		})
	}

	ui.PrintTable(tableBody, w)

	return nil
}
