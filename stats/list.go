package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/internal/models"
	"github.com/tomate-app/tomate/internal/ui"
	"github.com/tomate-app/tomate/store"
)

func printSessionsTable(w io.Writer, sessions []*models.Session) {
	tableBody := make([][]string, 0, len(sessions)+1)

	tableBody = append(tableBody, []string{
		"#",
		"START DATE",
		"END DATE",
		"TAGS",
		"STATUS",
	})

	for i, sess := range sessions {
		statusText := ui.Green("completed")
		if !sess.Completed {
			statusText = ui.Red("abandoned")
		}

		endDate := sess.EndTime.Format("January 02, 2006 03:04 PM")
		if sess.EndTime.IsZero() {
			endDate = ""
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("January 02, 2006 03:04 PM"),
			endDate,
			strings.Join(sess.Tags, ", "),
			statusText,
		})
	}

	ui.PrintTable(tableBody, w)
}

// List prints out a table of all the sessions that were created within the
// specified time range.
func List(db store.DB, opts config.FilterConfig, w io.Writer) error {
	sessions, err := db.GetSessions(opts.StartTime, opts.EndTime, opts.Tags)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, noSessionsMsg)
		return nil
	}

	printSessionsTable(w, sessions)

	return nil
}
