package app

import "github.com/urfave/cli/v2"

var (
	workFlag = &cli.UintFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work session duration in minutes (default: 25)",
	}

	shortBreakFlag = &cli.UintFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes (default: 5)",
	}

	longBreakFlag = &cli.UintFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes (default: 15)",
	}

	longBreakIntervalFlag = &cli.UintFlag{
		Name:    "long-break-interval",
		Aliases: []string{"int"},
		Usage:   "The number of work sessions before a long break (default: 4)",
	}

	addTagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Add comma-delimited tags to a session",
	}

	taskFlag = &cli.StringFlag{
		Name:  "task",
		Usage: "Attribute completed work sessions to a task (ID, ID prefix, or exact name)",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Play ambient sounds continuously during a session. Disable sound by setting to 'off'",
	}

	soundOnBreakFlag = &cli.BoolFlag{
		Name:    "sound-on-break",
		Aliases: []string{"sob"},
		Usage:   "Enable ambient sound in break sessions",
	}

	workSoundFlag = &cli.StringFlag{
		Name:    "work-sound",
		Aliases: []string{"ws"},
		Usage:   "Sound to play when a break session has ended. Defaults to loud_bell",
	}

	breakSoundFlag = &cli.StringFlag{
		Name:    "break-sound",
		Aliases: []string{"bs"},
		Usage:   "Sound to play when a work session has ended. Defaults to bell",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	strictFlag = &cli.BoolFlag{
		Name:  "strict",
		Usage: "When strict mode is enabled, you can't pause a work session or skip a break",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Specify a reporting period (e.g. today, 7days, 30days, all-time)",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Specify a reporting start date (e.g. '2 weeks ago')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Specify a reporting end date",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	allTasksFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include completed tasks in the listing",
	}

	taskNoteFlag = &cli.StringFlag{
		Name:  "note",
		Usage: "Attach a free-form note to the task",
	}

	taskEstimateFlag = &cli.UintFlag{
		Name:    "estimate",
		Aliases: []string{"e"},
		Usage:   "Estimated number of work sessions the task needs",
	}

	renameTaskFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Rename the task",
	}

	eventAtFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "When the focus block starts (e.g. 'tomorrow 9am', 'in 2 hours')",
	}

	eventForFlag = &cli.StringFlag{
		Name:  "for",
		Usage: "How long the focus block lasts (e.g. '90m', '2h')",
		Value: "1h",
	}
)
