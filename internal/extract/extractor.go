// Package extract turns raw sheet rows into normalized task rows. Field
// lookup goes through waterfall column resolution (first non-empty cell
// value across every column matching an alias), display values are
// preferred over raw values, and rows failing the inclusion policy are
// dropped silently.
package extract

import (
	"go.uber.org/zap"

	"github.com/planboard/planboard/internal/columns"
	"github.com/planboard/planboard/internal/model"
	"github.com/planboard/planboard/internal/smartsheet"
)

// InclusionPolicy decides which rows survive extraction. The two policies
// come from different generations of the source sheets; RequireTask is the
// default.
type InclusionPolicy string

const (
	// RequireTask keeps a row iff its task name resolves to a non-empty
	// value. The default policy.
	RequireTask InclusionPolicy = "require_task"

	// RequireAssigneeOrDate keeps a row iff at least one of assignee or
	// end date is present. Rows with neither are treated as placeholder
	// rows.
	RequireAssigneeOrDate InclusionPolicy = "require_assignee_or_date"
)

// Valid reports whether p is a known policy
func (p InclusionPolicy) Valid() bool {
	return p == RequireTask || p == RequireAssigneeOrDate
}

// Extractor normalizes sheet rows against an alias table
type Extractor struct {
	aliases columns.AliasTable
	policy  InclusionPolicy
	log     *zap.Logger
}

// NewExtractor creates an extractor. A zero-value policy falls back to
// RequireTask.
func NewExtractor(aliases columns.AliasTable, policy InclusionPolicy, log *zap.Logger) *Extractor {
	if !policy.Valid() {
		policy = RequireTask
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{aliases: aliases, policy: policy, log: log}
}

// fieldIDs holds the waterfall-resolved column ids per logical field
type fieldIDs struct {
	task     []int64
	status   []int64
	assignee []int64
	start    []int64
	end      []int64
}

// Extract normalizes every row of sheet. Missing fields default (status,
// assignee) or stay empty (dates); a missing start date inherits the end
// date so single-date milestone rows still span. Rows failing the
// inclusion policy are dropped, not errors.
func (e *Extractor) Extract(sheet *smartsheet.Sheet, ref model.SheetRef) []model.Row {
	ids := fieldIDs{
		task:     columns.ResolveAll(sheet.Columns, e.aliases[columns.FieldTask]),
		status:   columns.ResolveAll(sheet.Columns, e.aliases[columns.FieldStatus]),
		assignee: columns.ResolveAll(sheet.Columns, e.aliases[columns.FieldAssignee]),
		start:    columns.ResolveAll(sheet.Columns, e.aliases[columns.FieldStart]),
		end:      columns.ResolveAll(sheet.Columns, e.aliases[columns.FieldEnd]),
	}

	rows := make([]model.Row, 0, len(sheet.Rows))
	for _, raw := range sheet.Rows {
		row, ok := e.normalize(raw, ids, ref)
		if ok {
			rows = append(rows, row)
		}
	}

	e.log.Debug("extracted sheet",
		zap.String("sheet", ref.Name),
		zap.Int("source_rows", len(sheet.Rows)),
		zap.Int("kept", len(rows)))
	return rows
}

func (e *Extractor) normalize(raw smartsheet.Row, ids fieldIDs, ref model.SheetRef) (model.Row, bool) {
	task := cellValue(raw, ids.task)
	status := cellValue(raw, ids.status)
	assignee := cellValue(raw, ids.assignee)
	start := cellValue(raw, ids.start)
	end := cellValue(raw, ids.end)

	switch e.policy {
	case RequireAssigneeOrDate:
		if assignee == "" && end == "" {
			return model.Row{}, false
		}
	default: // RequireTask
		if task == "" {
			return model.Row{}, false
		}
	}

	if status == "" {
		status = model.DefaultStatus
	}
	if assignee == "" {
		assignee = model.DefaultAssignee
	}
	// Milestone fallback: a row with only an end date spans that one day.
	if start == "" {
		start = end
	}

	permalink := raw.Permalink
	if permalink == "" {
		permalink = ref.Permalink
	}

	return model.Row{
		Project:   ref.Project,
		SheetName: ref.Name,
		Task:      task,
		Status:    status,
		Assignee:  assignee,
		StartDate: start,
		EndDate:   end,
		Permalink: permalink,
	}, true
}

// cellValue walks the waterfall id list and returns the first non-empty
// cell text (display value preferred, raw value as fallback)
func cellValue(row smartsheet.Row, ids []int64) string {
	for _, id := range ids {
		if cell, ok := row.Cell(id); ok {
			if v := cell.Text(); v != "" {
				return v
			}
		}
	}
	return ""
}
