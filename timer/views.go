package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/timeutil"
)

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func (t *Timer) formatTimeRemaining() string {
	m, s := timeutil.SecsToMinsAndSecs(t.clock.Timeout.Seconds())

	return fmt.Sprintf(
		"%s:%s", fmt.Sprintf("%02d", m), fmt.Sprintf("%02d", s),
	)
}

// awayNoticeView announces sessions that completed while the program was
// not running.
func (t *Timer) awayNoticeView() string {
	if t.awayNotice == 0 {
		return ""
	}

	notice := fmt.Sprintf(
		"%d sessions completed while you were away",
		t.awayNotice,
	)

	if t.awayNotice == 1 {
		notice = "1 session completed while you were away"
	}

	return t.Opts.Style.Secondary.SetString(notice).String() + "\n\n"
}

func (t *Timer) sessionPromptView() string {
	var s strings.Builder

	title := "Your focus session is complete"
	msg := "It's time to take a well-deserved break!"

	next := t.cycle.NextPhase(t.Current.Name, t.CompletedWork)
	if next == config.Work {
		title = "Your break is over"
		msg = "It's time to refocus and get back to work!"
	}

	s.WriteString(t.awayNoticeView())
	s.WriteString(t.Opts.Style.Main.SetString(title).String())
	s.WriteString("\n\n" + t.Opts.Style.Secondary.SetString(msg).String())
	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.enter,
		defaultKeymap.quit,
	}),
	)

	return s.String()
}

func (t *Timer) timerView() string {
	var s strings.Builder

	s.WriteString(t.awayNoticeView())

	switch t.Current.Name {
	case config.Work:
		s.WriteString(t.Opts.Style.Work.Render())
	case config.ShortBreak:
		s.WriteString(t.Opts.Style.ShortBreak.Render())
	case config.LongBreak:
		s.WriteString(t.Opts.Style.LongBreak.Render())
	}

	var timeFormat string
	if t.Opts.Settings.TwentyFourHour {
		timeFormat = "15:04:05"
	} else {
		timeFormat = "03:04:05 PM"
	}

	if !t.clock.Running() && !t.clock.Timedout() {
		s.WriteString(t.Opts.Style.Secondary.SetString(" [Paused]").String())
	} else {
		s.WriteString(
			strings.TrimSpace(
				t.Opts.Style.Hint.SetString(
					"until " + t.Current.EndTime.Format(timeFormat),
				).String()),
		)
	}

	if t.Current.Name == config.Work {
		s.WriteString(
			strings.TrimSpace(
				t.Opts.Style.Hint.SetString(
					fmt.Sprintf(
						" (%d/%d)",
						t.cyclePos(),
						t.Opts.Settings.LongBreakInterval,
					),
				).String()))
	}

	percent := t.clock.Timeout.Seconds() / t.Current.Duration.Seconds()

	s.WriteString("\n\n")
	s.WriteString(t.Opts.Style.Main.SetString(t.formatTimeRemaining()).String())
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(1 - percent))
	s.WriteString(t.sessionHelpView())

	return s.String()
}

func (t *Timer) settingsView(view string) string {
	if t.settings == soundView && t.soundForm != nil {
		return view + "\n\n" + t.soundForm.View()
	}

	return view
}

func (t *Timer) sessionHelpView() string {
	if t.Current.Name == config.Work {
		return "\n\n" + t.help.ShortHelpView([]key.Binding{
			defaultKeymap.togglePlay,
			defaultKeymap.sound,
			defaultKeymap.quit,
		})
	}

	return "\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.esc,
		defaultKeymap.sound,
		defaultKeymap.quit,
	})
}

func (t *Timer) View() string {
	if t.waitForNextSession {
		return t.Opts.Style.Base.Render(t.sessionPromptView())
	}

	if t.clock.Timedout() {
		return ""
	}

	return t.Opts.Style.Base.Render(t.settingsView(t.timerView()))
}
