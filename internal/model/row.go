package model

// SheetRef identifies a matched sheet together with the project context it
// was discovered under. The context is fixed at discovery time: it is the
// display name of the sheet's immediate parent container and is never
// re-derived afterwards.
type SheetRef struct {
	ID        int64  // sheet id
	Name      string // sheet display name
	Project   string // immediate parent container name
	Permalink string
}

// Default field values applied when a logical field does not resolve
const (
	DefaultStatus   = "Not Started"
	DefaultAssignee = "Unassigned"
)

// Row is one normalized task row. Built once during extraction and
// immutable afterwards. Dates are kept as the raw strings the sheet
// reported; parsing is a concern of the view layer.
type Row struct {
	Project   string `json:"project"`     // project context from discovery
	SheetName string `json:"sheet_name"`  // originating sheet name
	Task      string `json:"task"`
	Status    string `json:"status"`      // DefaultStatus when unresolved
	Assignee  string `json:"assigned_to"` // DefaultAssignee when unresolved
	StartDate string `json:"start_date"`  // raw date string, may be empty
	EndDate   string `json:"end_date"`    // raw date string, may be empty
	Permalink string `json:"permalink"`   // link back to the source row
}

// Table is the aggregated result of one fetch cycle: every normalized row
// from every matched sheet, in discovery order then row order. Rows are
// independent; no uniqueness is enforced.
type Table struct {
	Rows []Row
}

// Len returns the number of rows in the table
func (t Table) Len() int {
	return len(t.Rows)
}

// Projects returns the distinct project contexts in first-seen order
func (t Table) Projects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		if !seen[r.Project] {
			seen[r.Project] = true
			out = append(out, r.Project)
		}
	}
	return out
}

// Assignees returns the distinct assignees in first-seen order
func (t Table) Assignees() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		if !seen[r.Assignee] {
			seen[r.Assignee] = true
			out = append(out, r.Assignee)
		}
	}
	return out
}
