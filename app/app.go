// Package app defines the command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomate-app/tomate/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tomate app instance.
func Get() *cli.App {
	tomateApp := &cli.App{
		Name: "tomate",
		Usage: `
		Tomate is a cross-platform productivity timer for the command-line. It is
		based on the Pomodoro Technique, a time management method developed by
		Francesco Cirillo in the late 1980s.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "resume",
				Usage:  "Resume a paused timer",
				Action: resumeAction,
				Flags: []cli.Flag{
					soundFlag,
					soundOnBreakFlag,
					sessionCmdFlag,
					disableNotificationFlag,
				},
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					addTagFlag,
				},
			},
			{
				Name:   "list",
				Usage:  "List the sessions within a reporting period",
				Action: listAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					addTagFlag,
					jsonFlag,
				},
			},
			{
				Name:   "edit-tag",
				Usage:  "Edit the tags of the sessions within a reporting period",
				Action: editTagsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					addTagFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Permanently delete the sessions within a reporting period",
				Action: deleteAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					addTagFlag,
				},
			},
			{
				Name:   "delete-timer",
				Usage:  "Discard the saved timer state",
				Action: deleteTimerAction,
			},
			{
				Name:  "task",
				Usage: "Manage the tasks that sessions are attributed to",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a new task",
						UsageText: "NAME [OPTIONS]",
						Action:    taskAddAction,
						Flags: []cli.Flag{
							addTagFlag,
							taskNoteFlag,
							taskEstimateFlag,
						},
					},
					{
						Name:   "list",
						Usage:  "List pending tasks",
						Action: taskListAction,
						Flags:  []cli.Flag{allTasksFlag},
					},
					{
						Name:      "done",
						Usage:     "Mark a task as completed",
						UsageText: "TASK",
						Action:    taskDoneAction,
					},
					{
						Name:      "edit",
						Usage:     "Edit a task",
						UsageText: "TASK [OPTIONS]",
						Action:    taskEditAction,
						Flags: []cli.Flag{
							renameTaskFlag,
							addTagFlag,
							taskNoteFlag,
							taskEstimateFlag,
						},
					},
					{
						Name:      "del",
						Usage:     "Delete a task",
						UsageText: "TASK",
						Action:    taskDelAction,
					},
				},
			},
			{
				Name:  "schedule",
				Usage: "Plan focus blocks on the calendar",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Plan a new focus block",
						UsageText: "TITLE --at WHEN [OPTIONS]",
						Action:    scheduleAddAction,
						Flags: []cli.Flag{
							eventAtFlag,
							eventForFlag,
							addTagFlag,
							taskFlag,
						},
					},
					{
						Name:   "list",
						Usage:  "Show the planned focus blocks",
						Action: scheduleListAction,
						Flags: []cli.Flag{
							periodFlag,
							startFlag,
							endFlag,
							addTagFlag,
						},
					},
					{
						Name:      "del",
						Usage:     "Remove a planned focus block",
						UsageText: "EVENT",
						Action:    scheduleDelAction,
					},
				},
			},
			{
				Name:   "trophy",
				Usage:  "Show achievements and goal progress",
				Action: trophyAction,
			},
			{
				Name:      "export",
				Usage:     "Export all stored data as JSON",
				UsageText: "[FILE]",
				Action:    exportAction,
			},
			{
				Name:      "import",
				Usage:     "Replace all stored data from a JSON export",
				UsageText: "FILE",
				Action:    importAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			addTagFlag,
			taskFlag,
			soundFlag,
			soundOnBreakFlag,
			workSoundFlag,
			breakSoundFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			strictFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return tomateApp
}
