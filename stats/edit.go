package stats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/tomate-app/tomate/internal/config"
	"github.com/tomate-app/tomate/store"
)

// EditTags replaces the tags of all sessions in the specified time range
// after confirmation.
func EditTags(
	db store.DB,
	opts config.FilterConfig,
	tags []string,
	r io.Reader,
	w io.Writer,
) error {
	sessions, err := db.GetSessions(opts.StartTime, opts.EndTime, opts.Tags)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, noSessionsMsg)
		return nil
	}

	for i := range sessions {
		sessions[i].Tags = tags
	}

	printSessionsTable(w, sessions)

	warning := pterm.Warning.Sprint(
		"The sessions above will be updated. Press ENTER to proceed",
	)
	fmt.Fprint(w, warning)

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')

	for _, sess := range sessions {
		err = db.UpdateSession(sess)
		if err != nil {
			return err
		}
	}

	return nil
}
