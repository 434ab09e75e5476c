package timer

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	btimer "github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/tomate-app/tomate/internal/config"
)

func (t *Timer) Init() tea.Cmd {
	if t.SoundStream != nil {
		if t.Current.Name == config.Work || t.Opts.Settings.SoundOnBreak {
			speaker.Clear()
			speaker.Play(t.SoundStream)
		}
	}

	return t.clock.Init()
}

// handleTimerTick processes timer tick events. The snapshot is written on
// every tick so that an abrupt shutdown loses at most one second.
func (t *Timer) handleTimerTick(msg btimer.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t.clock, cmd = t.clock.Update(msg)

	_ = t.persist()
	_ = t.writeStatusFile()

	return t, cmd
}

// handleTimerStartStop manages timer start/stop events.
func (t *Timer) handleTimerStartStop(
	msg btimer.StartStopMsg,
) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t.clock, cmd = t.clock.Update(msg)

	now := time.Now()

	if t.clock.Running() {
		t.sliceEndTime(t.Current, now)
	} else {
		closeTimeline(t.Current, now)
	}

	_ = t.persist()

	if t.SoundStream != nil {
		if !t.clock.Running() {
			_ = speaker.Suspend()
		} else {
			_ = speaker.Resume()
		}
	}

	return t, cmd
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if t.settings == soundView && t.soundForm != nil {
		form, formCmd := t.soundForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			t.soundForm = f
		}

		if t.soundForm.State == huh.StateCompleted {
			t.applyAmbientSound()
		}

		return t, formCmd
	}

	switch {
	case key.Matches(msg, defaultKeymap.enter):
		if t.waitForNextSession {
			next := t.cycle.NextPhase(t.Current.Name, t.CompletedWork)

			t.startSession(next)

			cmd = t.clock.Init()
		}

		return t, cmd

	case key.Matches(msg, defaultKeymap.sound):
		if !t.clock.Timedout() && !t.waitForNextSession {
			t.openSoundForm()
			return t, t.soundForm.Init()
		}

		return t, nil

	case key.Matches(msg, defaultKeymap.esc):
		// skip the running break
		if t.Current.Name != config.Work && t.clock.Running() {
			t.startSession(config.Work)

			return t, tea.Batch(t.clock.Stop(), t.clock.Init())
		}

		t.settings = ""

		return t, nil

	case key.Matches(msg, defaultKeymap.togglePlay):
		// breaks cannot be paused, and strict mode also forbids pausing
		// work sessions
		if t.Current.Name != config.Work || t.Opts.Settings.Strict {
			return t, nil
		}

		if t.waitForNextSession {
			return t, nil
		}

		return t, t.clock.Toggle()

	case key.Matches(msg, defaultKeymap.quit):
		closeTimeline(t.Current, time.Now())

		_ = t.persist()

		return t, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case btimer.TickMsg:
		return t.handleTimerTick(msg)

	case btimer.StartStopMsg:
		return t.handleTimerStartStop(msg)

	case btimer.TimeoutMsg:
		if err := t.postSession(); err != nil {
			slog.Error("finalising session failed", slog.Any("error", err))
		}

		return t, t.initNextSession()

	case tea.KeyMsg:
		slog.Debug(spew.Sdump(msg))

		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var progressModel tea.Model

		progressModel, cmd = t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	if t.settings == soundView && t.soundForm != nil {
		form, formCmd := t.soundForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			t.soundForm = f
		}

		return t, formCmd
	}

	return t, nil
}

// openSoundForm presents the ambient sound picker.
func (t *Timer) openSoundForm() {
	t.selectedSound = t.Opts.Settings.AmbientSound
	if t.selectedSound == "" {
		t.selectedSound = config.SoundOff
	}

	t.soundForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Ambient sound").
				Options(huh.NewOptions(SoundOpts()...)...).
				Value(&t.selectedSound),
		),
	)

	t.settings = soundView
}

// applyAmbientSound commits the sound picked in the form and restarts the
// background stream.
func (t *Timer) applyAmbientSound() {
	t.settings = ""
	t.soundForm = nil

	if t.selectedSound == config.SoundOff {
		t.Opts.Settings.AmbientSound = ""
	} else {
		t.Opts.Settings.AmbientSound = t.selectedSound
	}

	if err := t.setAmbientSound(); err != nil {
		slog.Error("setting ambient sound failed", slog.Any("error", err))
		return
	}

	speaker.Clear()

	if t.SoundStream != nil {
		if t.Current.Name == config.Work || t.Opts.Settings.SoundOnBreak {
			speaker.Play(t.SoundStream)
		}
	}
}
