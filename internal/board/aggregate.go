package board

import "github.com/planboard/planboard/internal/model"

// Aggregate concatenates per-sheet row batches into one table, preserving
// batch order and row order within each batch. No merging, no
// deduplication; a batch from a failed sheet is simply absent.
func Aggregate(batches [][]model.Row) model.Table {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	rows := make([]model.Row, 0, total)
	for _, b := range batches {
		rows = append(rows, b...)
	}
	return model.Table{Rows: rows}
}
