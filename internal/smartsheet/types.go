package smartsheet

import "encoding/json"

// Workspace is a top-level Smartsheet container
type Workspace struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Sheets  []SheetStub  `json:"sheets"`
	Folders []FolderStub `json:"folders"`
}

// Folder is a nested Smartsheet container
type Folder struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Sheets  []SheetStub  `json:"sheets"`
	Folders []FolderStub `json:"folders"`
}

// SheetStub is the lightweight sheet reference returned inside container
// listings. It carries no columns or rows; the full sheet must be fetched
// separately.
type SheetStub struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
}

// FolderStub is the lightweight folder reference returned inside container
// listings. Its Sheets/Folders fields are not populated; the folder must be
// re-fetched to see its contents.
type FolderStub struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Sheet is a full sheet with schema and data
type Sheet struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Permalink string   `json:"permalink"`
	Columns   []Column `json:"columns"`
	Rows      []Row    `json:"rows"`
}

// Column describes one column of a sheet's schema
type Column struct {
	ID    int64  `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type"` // e.g. "TEXT_NUMBER", "DATE", "CONTACT_LIST"
}

// Row is one data row of a sheet
type Row struct {
	ID        int64  `json:"id"`
	RowNumber int    `json:"rowNumber"`
	Permalink string `json:"permalink"`
	Cells     []Cell `json:"cells"`
}

// Cell is one cell of a row. Value is the raw typed value; DisplayValue is
// the formatted representation and is absent for some cell types (date cells
// in particular often carry only a raw value).
type Cell struct {
	ColumnID     int64           `json:"columnId"`
	Value        json.RawMessage `json:"value,omitempty"`
	DisplayValue string          `json:"displayValue,omitempty"`
}

// ValueString returns the cell's raw value as a string. Numbers are
// rendered through their JSON form; strings are unquoted; anything else
// (objects, null) returns "".
func (c Cell) ValueString() string {
	if len(c.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.Value, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(c.Value, &n); err == nil {
		// Preserve the JSON rendering rather than formatting ourselves
		return string(c.Value)
	}
	return ""
}

// Text returns the best textual representation of the cell: the display
// value when present, otherwise the raw value.
func (c Cell) Text() string {
	if c.DisplayValue != "" {
		return c.DisplayValue
	}
	return c.ValueString()
}

// Cell returns the row's cell for the given column id, or false when the
// row has no cell in that column.
func (r Row) Cell(columnID int64) (Cell, bool) {
	for _, c := range r.Cells {
		if c.ColumnID == columnID {
			return c, true
		}
	}
	return Cell{}, false
}
