package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/planboard/planboard/internal/board"
)

// DiagnosticsPanel shows what the last fetch cycle skipped: abandoned
// folder subtrees and unreadable sheets, plus recent activity lines. The
// table only ever under-counts on failure; this panel is how a user finds
// out.
type DiagnosticsPanel struct {
	lines  []string // recent activity, newest last
	buffer int      // max lines kept
}

// NewDiagnosticsPanel creates a diagnostics panel
func NewDiagnosticsPanel() DiagnosticsPanel {
	return DiagnosticsPanel{buffer: 100}
}

// AddLine appends a timestamped activity line
func (d *DiagnosticsPanel) AddLine(line string) {
	ts := time.Now().Format("15:04:05")
	d.lines = append(d.lines, ts+" "+line)
	if len(d.lines) > d.buffer {
		d.lines = d.lines[len(d.lines)-d.buffer:]
	}
}

// Render renders the panel for the given snapshot
func (d *DiagnosticsPanel) Render(snap *board.Snapshot, width, height int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Diagnostics"))
	b.WriteString("\n")

	if snap == nil {
		b.WriteString(DimStyle.Render("No fetch cycle has run yet."))
	} else {
		b.WriteString(DimStyle.Render(fmt.Sprintf("cycle %s · fetched %s",
			snap.CycleID, snap.FetchedAt.Format("15:04:05"))))
		b.WriteString("\n")

		if len(snap.Skips) == 0 && len(snap.SheetErrs) == 0 {
			b.WriteString(SuccessStyle.Render("Clean cycle: nothing skipped."))
			b.WriteString("\n")
		}
		for _, s := range snap.Skips {
			b.WriteString(WarningStyle.Render(truncate(
				fmt.Sprintf("skipped folder %q (%d): %s", s.Name, s.FolderID, s.Reason), width-2)))
			b.WriteString("\n")
		}
		for _, e := range snap.SheetErrs {
			b.WriteString(ErrorStyle.Render(truncate(
				fmt.Sprintf("unreadable sheet %q (%d): %s", e.Ref.Name, e.Ref.ID, e.Reason), width-2)))
			b.WriteString("\n")
		}
	}

	if len(d.lines) > 0 {
		b.WriteString(DimStyle.Render(strings.Repeat("─", min(width-2, 30))))
		b.WriteString("\n")
		start := 0
		if room := height - strings.Count(b.String(), "\n") - 2; room > 0 && len(d.lines) > room {
			start = len(d.lines) - room
		}
		for _, line := range d.lines[start:] {
			b.WriteString(DimStyle.Render(truncate(line, width-2)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}
