package ui

import (
	"fmt"
	"io"

	syncpkg "github.com/danielolaszy/tracksync/internal/sync"
)

// ConsoleReporter renders engine events as one-line, color-coded status lines,
// matching document order because the engine emits in document order.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter returns a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Action implements sync.Reporter.
func (r *ConsoleReporter) Action(ev syncpkg.Event) {
	switch ev.Action {
	case syncpkg.ActionCreate:
		if ev.DryRun {
			fmt.Fprintf(r.out, "  %s  %s: %s  →  %s\n",
				CreateStyle.Render("[CREATE]"), ev.IssueID, ev.Title, ev.ToStatus)
		} else {
			fmt.Fprintf(r.out, "  %s  %s: %s  →  %s\n",
				CreateStyle.Render("✓ Created"), ev.IssueID, ev.Title, ev.TrackerID)
		}
	case syncpkg.ActionUpdateStatus:
		if ev.DryRun {
			fmt.Fprintf(r.out, "  %s  %s: %s → %s\n",
				UpdateStyle.Render("[UPDATE]"), ev.IssueID, ev.FromStatus, ev.ToStatus)
		} else {
			fmt.Fprintf(r.out, "  %s  %s: → %s\n",
				UpdateStyle.Render("✓ Updated"), ev.IssueID, ev.ToStatus)
		}
	case syncpkg.ActionUpdateDescription:
		if ev.DryRun {
			fmt.Fprintf(r.out, "  %s  %s: description changed\n",
				UpdateStyle.Render("[UPDATE]"), ev.IssueID)
		} else {
			fmt.Fprintf(r.out, "  %s  %s: description\n",
				UpdateStyle.Render("✓ Updated"), ev.IssueID)
		}
	case syncpkg.ActionArchive:
		if ev.DryRun {
			fmt.Fprintf(r.out, "  %s  %s  (no longer in document)\n",
				ArchiveStyle.Render("[ARCHIVE]"), ev.IssueID)
		} else {
			fmt.Fprintf(r.out, "  %s  %s  →  %s\n",
				ArchiveStyle.Render("✓ Archived"), ev.IssueID, ev.TrackerID)
		}
	case syncpkg.ActionSkip:
		fmt.Fprintf(r.out, "  %s  %s: %s\n",
			MutedStyle.Render("- Skipped"), ev.IssueID, ev.Title)
	case syncpkg.ActionUnchanged:
		// Unchanged issues only show up in the summary tally
	}
}

// Summary implements sync.Reporter.
func (r *ConsoleReporter) Summary(s syncpkg.Summary) {
	label := ""
	if s.DryRun {
		label = "[DRY RUN] "
	}

	line := fmt.Sprintf("%s%s  %s  %s  %d unchanged",
		label,
		CreateStyle.Render(fmt.Sprintf("%d created", s.Created)),
		UpdateStyle.Render(fmt.Sprintf("%d updated", s.Updated)),
		ArchiveStyle.Render(fmt.Sprintf("%d archived", s.Archived)),
		s.Unchanged)
	if s.Skipped > 0 {
		line += fmt.Sprintf("  %s", MutedStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	}

	fmt.Fprintf(r.out, "\n  %s\n", line)
}
