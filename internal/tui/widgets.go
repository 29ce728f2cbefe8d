package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/views"
)

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// pad right-pads s to width runes
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// renderDeadlines renders the deadline list widget: overdue rows first,
// then rows due inside the lookahead window, each sorted by end date
func renderDeadlines(v *views.Views, t model.Table, now time.Time, days, width int) string {
	overdue := views.SortByEndDate(v.Overdue(t, now))
	upcoming := views.SortByEndDate(v.DueWithin(t, now, days))

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Deadlines"))
	b.WriteString("\n")

	if len(overdue) == 0 && len(upcoming) == 0 {
		b.WriteString(DimStyle.Render("Nothing due. Enjoy it while it lasts."))
		return b.String()
	}

	line := func(style lipgloss.Style, r model.Row) {
		text := fmt.Sprintf("%s  %s · %s", r.EndDate, truncate(r.Task, width/2), r.Assignee)
		b.WriteString(style.Render(truncate(text, width-2)))
		b.WriteString("\n")
	}

	if len(overdue) > 0 {
		b.WriteString(OverdueStyle.Bold(true).Render(fmt.Sprintf("Overdue (%d)", len(overdue))))
		b.WriteString("\n")
		for _, r := range overdue {
			line(OverdueStyle, r)
		}
	}
	if len(upcoming) > 0 {
		b.WriteString(DueSoonStyle.Bold(true).Render(fmt.Sprintf("Due within %d days (%d)", days, len(upcoming))))
		b.WriteString("\n")
		for _, r := range upcoming {
			line(DueSoonStyle, r)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderWorkload renders per-person (or per-project) bar counts scaled to
// the widest bucket
func renderWorkload(title string, counts []views.Count, width int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(title))
	b.WriteString("\n")

	if len(counts) == 0 {
		b.WriteString(DimStyle.Render("No active tasks."))
		return b.String()
	}

	labelWidth := 0
	max := 0
	for _, c := range counts {
		if n := len([]rune(c.Name)); n > labelWidth {
			labelWidth = n
		}
		if c.Count > max {
			max = c.Count
		}
	}
	if labelWidth > width/3 {
		labelWidth = width / 3
	}

	barRoom := width - labelWidth - 8
	if barRoom < 4 {
		barRoom = 4
	}

	for _, c := range counts {
		barLen := c.Count * barRoom / max
		if barLen < 1 {
			barLen = 1
		}
		b.WriteString(BarLabelStyle.Render(pad(truncate(c.Name, labelWidth), labelWidth)))
		b.WriteString(" ")
		b.WriteString(BarStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(fmt.Sprintf(" %d\n", c.Count))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTimeline renders a compact Gantt view: one line per row, its
// start-to-end span mapped onto a window around today
func renderTimeline(v *views.Views, t model.Table, now time.Time, width int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Timeline"))
	b.WriteString("\n")

	labelWidth := width / 3
	span := width - labelWidth - 3
	if span < 10 {
		span = 10
	}

	// Window: a week back, three weeks ahead.
	start := views.DateOnly(now).AddDate(0, 0, -7)
	end := views.DateOnly(now).AddDate(0, 0, 21)
	totalDays := int(end.Sub(start).Hours() / 24)

	col := func(d time.Time) int {
		days := int(d.Sub(start).Hours() / 24)
		if days < 0 {
			days = 0
		}
		if days > totalDays {
			days = totalDays
		}
		return days * (span - 1) / totalDays
	}

	drew := 0
	for _, r := range t.Rows {
		s, sok := views.ParseDate(r.StartDate)
		e, eok := views.ParseDate(r.EndDate)
		if !sok || !eok {
			continue
		}
		if e.Before(start) || s.After(end) {
			continue
		}

		from, to := col(s), col(e)
		if to < from {
			to = from
		}
		bar := strings.Repeat(" ", from) + strings.Repeat("─", to-from) + "●"

		style := TimelineSpanStyle
		if v.IsTerminal(r.Status) {
			style = TimelineDoneStyle
		}
		b.WriteString(BarLabelStyle.Render(pad(truncate(r.Task, labelWidth-1), labelWidth)))
		b.WriteString(" ")
		b.WriteString(style.Render(bar))
		b.WriteString("\n")
		drew++
	}

	if drew == 0 {
		b.WriteString(DimStyle.Render("No dated tasks in the window."))
		return b.String()
	}

	// Today marker legend.
	todayCol := labelWidth + 1 + col(views.DateOnly(now))
	b.WriteString(strings.Repeat(" ", todayCol))
	b.WriteString(DimStyle.Render("▲ today"))
	return b.String()
}

// renderTable renders the full data table with a selected row highlight
func renderTable(t model.Table, width, selected, height int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(fmt.Sprintf("All tasks (%d)", t.Len())))
	b.WriteString("\n")

	if t.Len() == 0 {
		b.WriteString(DimStyle.Render("No rows."))
		return b.String()
	}

	// Column widths proportional to the panel.
	taskW := width * 30 / 100
	nameW := width * 15 / 100
	projW := width * 15 / 100
	statW := width * 14 / 100
	dateW := 10

	header := pad("Task", taskW) + pad("Assignee", nameW) + pad("Project", projW) +
		pad("Status", statW) + pad("Start", dateW+1) + pad("End", dateW)
	b.WriteString(TableHeaderStyle.Render(truncate(header, width)))
	b.WriteString("\n")

	first, last := tableWindow(t.Len(), selected, height)
	for i := first; i < last; i++ {
		r := t.Rows[i]
		line := pad(truncate(r.Task, taskW-1), taskW) +
			pad(truncate(r.Assignee, nameW-1), nameW) +
			pad(truncate(r.Project, projW-1), projW) +
			pad(truncate(r.Status, statW-1), statW) +
			pad(r.StartDate, dateW+1) +
			pad(r.EndDate, dateW)
		line = truncate(line, width)
		if i == selected {
			b.WriteString(TableSelectedStyle.Render(line))
		} else {
			b.WriteString(TableRowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// tableWindow picks the visible row range keeping selected in view
func tableWindow(total, selected, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	first := selected - height/2
	if first < 0 {
		first = 0
	}
	if first+height > total {
		first = total - height
	}
	return first, first + height
}
