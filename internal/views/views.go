// Package views derives read-only slices over an aggregated task table:
// overdue work, work due inside a lookahead window, workload counts and
// exact-match filters. Every computation takes a caller-supplied "now" and
// compares dates at day granularity, so results do not flip with the hour
// of day.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/planboard/planboard/internal/model"
)

// dateLayouts are tried in order when parsing raw date strings. Sheets
// report ISO dates; user-typed cells occasionally carry US short forms.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/06",
	"01/02/2006",
}

// ParseDate parses a raw date string from a sheet cell. ok is false when
// the value is empty or matches no known layout.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates a time to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Views computes derived slices against a configurable terminal-status set
type Views struct {
	terminal map[string]bool
}

// DefaultTerminalStatuses are the statuses meaning "no longer active".
// The set is configuration; deployments revise it without code changes.
var DefaultTerminalStatuses = []string{"Complete", "Done", "Shipped", "Cancelled", "Canceled"}

// New creates a Views with the given terminal-status set. Matching is
// case-insensitive and whitespace-trimmed.
func New(terminalStatuses []string) *Views {
	terminal := make(map[string]bool, len(terminalStatuses))
	for _, s := range terminalStatuses {
		terminal[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return &Views{terminal: terminal}
}

// IsTerminal reports whether status means the row is finished
func (v *Views) IsTerminal(status string) bool {
	return v.terminal[strings.ToLower(strings.TrimSpace(status))]
}

// active reports whether the row counts toward workload and deadline views
func (v *Views) active(r model.Row) bool {
	return !v.IsTerminal(r.Status)
}

// Overdue returns active rows whose end date is strictly before now's day,
// preserving table order
func (v *Views) Overdue(t model.Table, now time.Time) []model.Row {
	today := DateOnly(now)
	var out []model.Row
	for _, r := range t.Rows {
		if !v.active(r) {
			continue
		}
		if end, ok := ParseDate(r.EndDate); ok && end.Before(today) {
			out = append(out, r)
		}
	}
	return out
}

// DueWithin returns active rows whose end date falls in [today, today+days],
// both bounds inclusive, preserving table order
func (v *Views) DueWithin(t model.Table, now time.Time, days int) []model.Row {
	today := DateOnly(now)
	limit := today.AddDate(0, 0, days)
	var out []model.Row
	for _, r := range t.Rows {
		if !v.active(r) {
			continue
		}
		end, ok := ParseDate(r.EndDate)
		if !ok {
			continue
		}
		if !end.Before(today) && !end.After(limit) {
			out = append(out, r)
		}
	}
	return out
}

// Count is one workload bucket
type Count struct {
	Name  string
	Count int
}

// WorkloadByAssignee counts active rows per assignee, highest first
// (ties broken by name)
func (v *Views) WorkloadByAssignee(t model.Table) []Count {
	return v.workload(t, func(r model.Row) string { return r.Assignee })
}

// WorkloadByProject counts active rows per project, highest first
func (v *Views) WorkloadByProject(t model.Table) []Count {
	return v.workload(t, func(r model.Row) string { return r.Project })
}

func (v *Views) workload(t model.Table, key func(model.Row) string) []Count {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		if v.active(r) {
			counts[key(r)]++
		}
	}
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ByAssignee returns the rows assigned to name (exact match), preserving
// table order
func ByAssignee(t model.Table, name string) model.Table {
	return filter(t, func(r model.Row) bool { return r.Assignee == name })
}

// ByProject returns the rows belonging to project (exact match)
func ByProject(t model.Table, project string) model.Table {
	return filter(t, func(r model.Row) bool { return r.Project == project })
}

func filter(t model.Table, keep func(model.Row) bool) model.Table {
	var rows []model.Row
	for _, r := range t.Rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return model.Table{Rows: rows}
}

// SortByEndDate returns rows ordered by parsed end date ascending. Rows
// without a parseable date sort last, keeping their relative order.
func SortByEndDate(rows []model.Row) []model.Row {
	out := make([]model.Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		di, iok := ParseDate(out[i].EndDate)
		dj, jok := ParseDate(out[j].EndDate)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return di.Before(dj)
	})
	return out
}
