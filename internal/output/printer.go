package output

import (
	"io"
	"time"

	"github.com/twiced-technology-gmbh/weightboard/internal/render"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// Printer paints snapshots to a writer in one of the CLI formats.
type Printer struct {
	W      io.Writer
	Format Format
	Pill   PillColor
	Now    func() time.Time
	Filter FilterOptions // narrows the task list; progress is never filtered
}

// Paint writes s. JSON output is the snapshot as the store sent it; the
// other formats go through a render.Renderer first.
func (p *Printer) Paint(s task.Snapshot) {
	if p.Format == FormatJSON {
		_ = JSON(p.W, s) // best-effort, like JSONError
		return
	}

	r := render.New(p.Now)
	r.Paint(s)
	d := r.Display()
	d.Entries = Filter(d.Entries, p.Filter)

	if p.Format == FormatCompact {
		DashboardCompact(p.W, d)
		return
	}
	DashboardTable(p.W, d, p.Pill)
}
