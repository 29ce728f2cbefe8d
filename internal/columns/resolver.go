// Package columns maps logical task fields to the concrete columns of a
// sheet schema. Real-world project plans rename columns freely ("Due Date",
// "End Date", "Finish"), so each logical field carries an ordered list of
// acceptable aliases and resolution is by normalized title match.
package columns

import (
	"strings"

	"github.com/planboard/planboard/internal/smartsheet"
)

// Logical field names used throughout the pipeline
const (
	FieldTask     = "task_name"
	FieldStatus   = "status"
	FieldAssignee = "assigned_to"
	FieldStart    = "start_date"
	FieldEnd      = "end_date"
)

// AliasTable maps a logical field to its ordered alias list. Earlier
// aliases win. Alias matching is case-insensitive and whitespace-trimmed.
type AliasTable map[string][]string

// DefaultAliases covers the column names observed across project-plan
// sheets. Deployments override this through configuration.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldTask:     {"Task Name", "Task", "Name", "Deliverable"},
		FieldStatus:   {"Status", "Task Status", "State"},
		FieldAssignee: {"Assigned To", "Assignee", "Owner", "Responsible"},
		FieldStart:    {"Start Date", "Start", "Begin Date"},
		FieldEnd:      {"End Date", "Due Date", "Finish Date", "Due", "Finish", "Deadline"},
	}
}

// normalize prepares a column title or alias for comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve returns the id of the column matching the highest-priority alias.
// Priority is alias-list order first, then schema order among columns
// matching the same alias, which keeps resolution deterministic for any
// schema. ok is false when no alias matches any column; callers treat that
// as "field absent for this sheet".
func Resolve(cols []smartsheet.Column, aliases []string) (int64, bool) {
	for _, alias := range aliases {
		want := normalize(alias)
		for _, col := range cols {
			if normalize(col.Title) == want {
				return col.ID, true
			}
		}
	}
	return 0, false
}

// ResolveAll returns every column id matching any alias, in the same
// alias-then-schema priority order as Resolve and with duplicates removed.
// Extraction walks this list and takes the first non-empty cell value, so
// a sheet carrying both a stale "Due" and a maintained "Due Date" column
// still yields data.
func ResolveAll(cols []smartsheet.Column, aliases []string) []int64 {
	var ids []int64
	seen := make(map[int64]bool)
	for _, alias := range aliases {
		want := normalize(alias)
		for _, col := range cols {
			if normalize(col.Title) == want && !seen[col.ID] {
				seen[col.ID] = true
				ids = append(ids, col.ID)
			}
		}
	}
	return ids
}
