package stats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/store"
)

// Delete removes all sessions that fall in the specified time range. It
// requests confirmation before proceeding with the permanent removal of the
// sessions from the database.
func Delete(db store.DB, opts config.FilterConfig, r io.Reader, w io.Writer) error {
	sessions, err := db.GetSessions(opts.StartTime, opts.EndTime, opts.Tags)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, noSessionsMsg)
		return nil
	}

	printSessionsTable(w, sessions)

	warning := pterm.Warning.Sprint(
		"The above sessions will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(w, warning)

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')

	return db.DeleteSessions(sessions)
}
