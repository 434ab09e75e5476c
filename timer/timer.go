// Package timer operates the countdown timer and reconciles persisted
// timer state across restarts
package timer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	btimer "github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	bolt "go.etcd.io/bbolt"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/pathutil"
	"github.com/tomate-app/tomate/internal/timeutil"
	"github.com/tomate-app/tomate/store"
)

const (
	padding  = 2
	maxWidth = 80
)

const soundView = "sound"

// Timer is the timer TUI model.
type Timer struct {
	db    store.DB
	Opts  *config.Config
	cycle CycleConfig

	clock    btimer.Model
	progress progress.Model
	help     help.Model

	soundForm     *huh.Form
	settings      string
	selectedSound string

	// Current is the session now counting down.
	Current   *models.Session
	StartTime time.Time

	// CompletedWork is the cumulative count of finished work sessions,
	// which decides when a long break is due.
	CompletedWork int

	// awayNotice holds the number of sessions that completed while the
	// program was not running, surfaced once after reconciliation.
	awayNotice int

	waitForNextSession bool
	taskID             string

	SoundStream beep.Streamer
}

// Status is the JSON document the running timer publishes for the status
// command.
type Status struct {
	EndTime           time.Time          `json:"end_time"`
	Name              config.SessionType `json:"name"`
	Tags              []string           `json:"tags"`
	WorkCycle         int                `json:"work_cycle"`
	LongBreakInterval int                `json:"long_break_interval"`
	Paused            bool               `json:"paused"`
}

// New creates a new timer.
func New(dbClient store.DB, cfg *config.Config) (*Timer, error) {
	t := &Timer{
		db:       dbClient,
		Opts:     cfg,
		cycle:    NewCycleConfig(cfg),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}

	err := t.setAmbientSound()

	return t, err
}

// SetTask attributes completed work sessions to the given task.
func (t *Timer) SetTask(taskID string) {
	t.taskID = taskID
}

// cyclePos is the 1-based position of the current work session within the
// long break interval, for display.
func (t *Timer) cyclePos() int {
	interval := t.Opts.Settings.LongBreakInterval
	if interval <= 0 {
		return t.CompletedWork + 1
	}

	return t.CompletedWork%interval + 1
}

// Run recovers any persisted running timer and starts the TUI. resume also
// revives a paused snapshot instead of beginning a fresh cycle.
func (t *Timer) Run(resume bool) error {
	now := time.Now()

	snap, err := t.db.GetSnapshot()
	if err != nil {
		return err
	}

	switch {
	case snap != nil && (snap.Running || resume):
		// A paused snapshot is restored exactly as it was written: the time
		// spent paused must not count against the session. The clock starts
		// ticking again once the TUI takes over.
		t.restoreSnapshot(snap, now)
	case resume:
		return errNoPausedTimer
	default:
		t.StartTime = now
		t.Current = t.newSession(config.Work, now)
		t.clock = btimer.New(t.Opts.Work.Duration)
	}

	if err := t.persist(); err != nil {
		return err
	}

	p := tea.NewProgram(t)

	_, err = p.Run()

	return err
}

// restoreSnapshot rebuilds the live timer state from a persisted snapshot,
// accounting for the wall-clock time that passed while the program was not
// running.
func (t *Timer) restoreSnapshot(snap *models.TimerSnapshot, now time.Time) {
	rec := Reconcile(snap, t.cycle, now)

	t.CompletedWork = rec.CompletedWorkSessions
	t.awayNotice = rec.CompletedWhileAway
	t.Opts.Tags = snap.Tags
	t.taskID = snap.TaskID

	t.StartTime = snap.StartTime
	if t.StartTime.IsZero() {
		t.StartTime = now
	}

	remaining := time.Duration(rec.SecondsRemaining) * time.Second
	started := now.Add(remaining - t.Opts.Duration(rec.Phase))

	t.Current = t.newSession(rec.Phase, started)
	t.Current.EndTime = now.Add(remaining)

	t.clock = btimer.New(remaining)
}

// persist saves the current timer snapshot, overwriting the previous one.
func (t *Timer) persist() error {
	snap := &models.TimerSnapshot{
		Phase:                 t.Current.Name,
		SecondsRemaining:      int(t.clock.Timeout / time.Second),
		Running:               !t.waitForNextSession && !t.clock.Timedout(),
		CompletedWorkSessions: t.CompletedWork,
		WrittenAt:             time.Now(),
		StartTime:             t.StartTime,
		SessionKey:            t.Current.StartTime,
		Tags:                  t.Opts.Tags,
		TaskID:                t.taskID,
	}

	if !t.clock.Running() && !t.clock.Timedout() {
		snap.Running = false
	}

	return t.db.SaveSnapshot(snap)
}

// recordSession saves a completed work session and credits it to the
// linked task, if any.
func (t *Timer) recordSession() error {
	if t.Current.Name != config.Work {
		return nil
	}

	if err := t.db.UpdateSession(t.Current); err != nil {
		return err
	}

	if t.taskID == "" {
		return nil
	}

	task, err := t.db.GetTask(t.taskID)
	if err != nil || task == nil {
		return err
	}

	task.CompletedSessions++

	return t.db.UpdateTask(task)
}

// postSession finalises the session that just timed out: record it, alert
// the user, and run the configured session command.
func (t *Timer) postSession() error {
	now := time.Now()

	t.Current.Completed = true
	closeTimeline(t.Current, now)

	if t.Current.Name == config.Work {
		t.CompletedWork++
	}

	if err := t.recordSession(); err != nil {
		return err
	}

	next := t.cycle.NextPhase(t.Current.Name, t.CompletedWork)

	t.notify(t.Current.Name, next)

	return t.runSessionCmd(t.Opts.Settings.Cmd)
}

// initNextSession begins the next session in the cycle, or parks the timer
// until the user confirms when auto-start is off.
func (t *Timer) initNextSession() tea.Cmd {
	next := t.cycle.NextPhase(t.Current.Name, t.CompletedWork)

	autoStart := t.Opts.Settings.AutoStartBreak
	if next == config.Work {
		autoStart = t.Opts.Settings.AutoStartWork
	}

	if !autoStart {
		t.waitForNextSession = true
		_ = t.persist()

		return nil
	}

	t.startSession(next)

	return t.clock.Init()
}

// startSession swaps in a fresh session for the given phase.
func (t *Timer) startSession(name config.SessionType) {
	t.waitForNextSession = false
	t.awayNotice = 0
	t.Current = t.newSession(name, time.Now())
	t.clock = btimer.New(t.Opts.Duration(name))

	_ = t.persist()
}

// notify sends a desktop notification and plays the phase alert sound.
func (t *Timer) notify(sessName, nextSessName config.SessionType) {
	if !t.Opts.Notifications.Enabled {
		return
	}

	title := string(sessName) + " is finished"
	msg := t.Opts.Message(nextSessName)

	if err := beeep.Notify(title, msg, ""); err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}

	sound := t.Opts.AlertSound(sessName)
	if sound == config.SoundOff || sound == "" {
		return
	}

	if err := playAlertSound(sound); err != nil {
		pterm.Error.Printfln("unable to play sound: %v", err)
	}
}

// runSessionCmd executes the command configured to run after each session.
func (t *Timer) runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// writeStatusFile publishes the running timer state for the status
// command.
func (t *Timer) writeStatusFile() error {
	s := Status{
		Name:              t.Current.Name,
		WorkCycle:         t.cyclePos(),
		Tags:              t.Opts.Tags,
		LongBreakInterval: t.Opts.Settings.LongBreakInterval,
		EndTime:           t.Current.EndTime,
		Paused:            !t.clock.Running() && !t.clock.Timedout(),
	}

	statusFile, err := os.Create(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	defer func() {
		_ = statusFile.Close()
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReportStatus reports the status of the currently running timer.
func ReportStatus() error {
	dbFilePath := pathutil.DBFilePath()
	statusFilePath := pathutil.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	_, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// the database lock being free means no timer is running, so there is
	// no status to report
	if err == nil {
		return nil
	}

	if !errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	total := timeutil.Round(time.Until(s.EndTime).Seconds())
	if total < 0 {
		return nil
	}

	mins, secs := timeutil.SecsToMinsAndSecs(float64(total))

	var text string

	switch s.Name {
	case config.Work:
		text = fmt.Sprintf("[Work %d/%d]", s.WorkCycle, s.LongBreakInterval)
	case config.ShortBreak:
		text = "[Short break]"
	case config.LongBreak:
		text = "[Long break]"
	}

	if s.Paused {
		text += " (paused)"
	}

	pterm.Printfln("%s: %02d:%02d", text, mins, secs)

	return nil
}
