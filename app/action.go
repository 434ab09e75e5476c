package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/pathutil"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/schedule"
	"github.com/tomate-app/tomate/stats"
	"github.com/tomate-app/tomate/store"
	"github.com/tomate-app/tomate/task"
	"github.com/tomate-app/tomate/timer"
	"github.com/tomate-app/tomate/trophy"
)

const (
	envNoColor       = "NO_COLOR"
	envTomateNoColor = "TOMATE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func openStore() (store.DB, error) {
	return store.NewClient(pathutil.DBFilePath())
}

func splitTags(ctx *cli.Context) []string {
	var tags []string

	for _, t := range strings.Split(ctx.String("tag"), ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

func runTimer(ctx *cli.Context, resume bool) error {
	cfg := config.Timer(ctx)

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	t, err := timer.New(db, cfg)
	if err != nil {
		return err
	}

	if ref := ctx.String("task"); ref != "" {
		tsk, findErr := task.Find(db, ref)
		if findErr != nil {
			return findErr
		}

		t.SetTask(tsk.ID)
	}

	return t.Run(resume)
}

// defaultAction starts the timer, continuing from saved state when the
// previous run was interrupted.
func defaultAction(ctx *cli.Context) error {
	return runTimer(ctx, false)
}

// resumeAction recovers a previously paused timer.
func resumeAction(ctx *cli.Context) error {
	return runTimer(ctx, true)
}

// statusAction prints the status of the currently running timer.
func statusAction(_ *cli.Context) error {
	return timer.ReportStatus()
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	opts, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return stats.Show(db, *opts, os.Stdout)
}

// listAction prints a table of all the sessions started within a time
// period.
func listAction(ctx *cli.Context) error {
	opts, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("json") {
		sessions, getErr := db.GetSessions(
			opts.StartTime,
			opts.EndTime,
			opts.Tags,
		)
		if getErr != nil {
			return getErr
		}

		b, marshalErr := json.Marshal(sessions)
		if marshalErr != nil {
			return marshalErr
		}

		fmt.Println(string(b))

		return nil
	}

	return stats.List(db, *opts, os.Stdout)
}

// editTagsAction replaces the tags for the sessions in a time period.
func editTagsAction(ctx *cli.Context) error {
	opts, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return stats.EditTags(
		db,
		*opts,
		ctx.Args().Slice(),
		os.Stdin,
		os.Stdout,
	)
}

// deleteAction deletes the sessions in a time period.
func deleteAction(ctx *cli.Context) error {
	opts, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return stats.Delete(db, *opts, os.Stdin, os.Stdout)
}

// deleteTimerAction discards the saved timer state.
func deleteTimerAction(_ *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return db.DeleteSnapshot()
}

func taskAddAction(ctx *cli.Context) error {
	name := strings.Join(ctx.Args().Slice(), " ")

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	t, err := task.Add(
		db,
		name,
		ctx.String("note"),
		splitTags(ctx),
		int(ctx.Uint("estimate")),
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Added task: %s", t.Name)

	return nil
}

func taskListAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return task.List(db, ctx.Bool("all"), os.Stdout)
}

func taskDoneAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	t, err := task.Done(db, ctx.Args().First())
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Completed task: %s", t.Name)

	return nil
}

func taskEditAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	var opts task.EditOpts

	if ctx.IsSet("name") {
		name := ctx.String("name")
		opts.Name = &name
	}

	if ctx.IsSet("note") {
		note := ctx.String("note")
		opts.Note = &note
	}

	if ctx.IsSet("tag") {
		opts.Tags = splitTags(ctx)
	}

	if ctx.IsSet("estimate") {
		estimate := int(ctx.Uint("estimate"))
		opts.Estimate = &estimate
	}

	t, err := task.Edit(db, ctx.Args().First(), opts)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Updated task: %s", t.Name)

	return nil
}

func taskDelAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return task.Del(db, ctx.Args().First())
}

func scheduleAddAction(ctx *cli.Context) error {
	title := strings.Join(ctx.Args().Slice(), " ")

	start, err := schedule.ParseStart(ctx.String("at"), time.Now())
	if err != nil {
		return err
	}

	duration, err := time.ParseDuration(ctx.String("for"))
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	var taskID string

	if ref := ctx.String("task"); ref != "" {
		tsk, findErr := task.Find(db, ref)
		if findErr != nil {
			return findErr
		}

		taskID = tsk.ID
	}

	event, err := schedule.Add(
		db,
		title,
		start,
		duration,
		splitTags(ctx),
		taskID,
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Planned %q for %s",
		event.Title,
		event.StartTime.Format("Mon, Jan 02 15:04"),
	)

	return nil
}

func scheduleListAction(ctx *cli.Context) error {
	var opts *config.FilterConfig

	// Planned blocks live in the future, so without an explicit range the
	// agenda shows the month ahead rather than the default reporting
	// window.
	if ctx.IsSet("period") || ctx.IsSet("start") || ctx.IsSet("end") {
		var err error

		opts, err = config.Filter(ctx)
		if err != nil {
			return err
		}
	} else {
		now := time.Now()

		opts = &config.FilterConfig{
			StartTime: now,
			EndTime:   now.AddDate(0, 1, 0),
			Tags:      splitTags(ctx),
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return schedule.List(db, opts, os.Stdout)
}

func scheduleDelAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return schedule.Del(db, ctx.Args().First())
}

func trophyAction(ctx *cli.Context) error {
	cfg := config.Timer(ctx)

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return trophy.Show(db, cfg, os.Stdout)
}

// exportAction writes the store contents as JSON to the named file, or to
// standard output when no file is given.
func exportAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Args().First() == "" {
		return db.Export(os.Stdout)
	}

	f, err := os.Create(ctx.Args().First())
	if err != nil {
		return err
	}

	defer f.Close()

	if err := db.Export(f); err != nil {
		return err
	}

	pterm.Success.Printfln("Exported data to %s", f.Name())

	return nil
}

// importAction replaces the store contents from a JSON export.
func importAction(ctx *cli.Context) error {
	pathToFile := ctx.Args().First()
	if pathToFile == "" {
		return fmt.Errorf("a file to import from is required")
	}

	f, err := os.Open(pathToFile)
	if err != nil {
		return err
	}

	defer f.Close()

	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	if err := db.Import(f); err != nil {
		return err
	}

	pterm.Success.Printfln("Imported data from %s", pathToFile)

	return nil
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/tomate-app/tomate/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTomateNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tomate")

	return nil
}
