package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/weightboard/internal/render"
)

// DashboardCompact renders the display one line per task, followed by a
// progress line.
func DashboardCompact(w io.Writer, d render.Display) {
	if len(d.Entries) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
	}

	for _, e := range d.Entries {
		fmt.Fprintln(w, formatEntryLine(e))
	}

	fmt.Fprintln(w, "progress:"+d.Bar.Label)
}

// formatEntryLine builds the one-line representation of an entry.
func formatEntryLine(e render.Entry) string {
	mark := "[ ]"
	if e.Completed {
		mark = "[x]"
	}
	return "#" + e.ID.String() + " " + mark + " " + e.Title +
		" due:" + e.Due + " (" + string(e.Class) + ")" +
		" w:" + strconv.FormatFloat(e.Weight, 'f', -1, 64)
}
