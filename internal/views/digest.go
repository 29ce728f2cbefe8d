package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/planboard/planboard/internal/model"
)

// Digest is the textual rollup handed to the summarizer: headline counts
// plus the top-N overdue and upcoming rows, each sorted by end date. It is
// the only interface the summarizer sees; it never reads the table itself.
func (v *Views) Digest(t model.Table, now time.Time, windowDays, topN int) string {
	overdue := SortByEndDate(v.Overdue(t, now))
	upcoming := SortByEndDate(v.DueWithin(t, now, windowDays))

	var b strings.Builder
	fmt.Fprintf(&b, "Task digest for %s\n", DateOnly(now).Format("2006-01-02"))
	fmt.Fprintf(&b, "Total tasks: %d across %d projects\n", t.Len(), len(t.Projects()))
	fmt.Fprintf(&b, "Overdue: %d\n", len(overdue))
	fmt.Fprintf(&b, "Due within %d days: %d\n", windowDays, len(upcoming))

	if len(overdue) > 0 {
		b.WriteString("\nTop overdue:\n")
		writeRows(&b, overdue, topN)
	}
	if len(upcoming) > 0 {
		b.WriteString("\nComing up:\n")
		writeRows(&b, upcoming, topN)
	}
	return b.String()
}

func writeRows(b *strings.Builder, rows []model.Row, topN int) {
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	for _, r := range rows {
		fmt.Fprintf(b, "- %s (%s, %s) due %s [%s]\n",
			r.Task, r.Assignee, r.Project, r.EndDate, r.Status)
	}
}
