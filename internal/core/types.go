package core

import "github.com/JonMunkholm/appdsizer/internal/schema"

// FieldType represents the expected semantic type of a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldBool
	FieldCount // integer with unit suffixes ("50k", "1.5M", "2 mil")
)

// FieldSpec defines one column of a table and the header spellings that identify it.
type FieldSpec struct {
	Name       string              // Canonical field name used by BuildRecord
	Type       FieldType           // Expected data type
	Synonyms   []string            // Accepted header spellings, most specific first
	Required   bool                // Header must contain this column for the table to be recognized
	AllowEmpty bool                // If false, a blank cell is reported as a missing value
	Default    string              // Value used when the cell is blank
	Normalizer func(string) string // Optional transformation applied before coercion
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key   string // Unique identifier: "applications"
	Sheet string // Sheet the table lives on: "Anexo Aplicaciones"
	Label string // Display name: "Applications"
	Order int    // Tie-break order when two tables match the same row equally
}

// HeaderIndex maps canonical field names to their column in the sheet.
type HeaderIndex map[string]int

// BuildRecordFunc builds an inventory record from a data row.
// Returning false skips the row (placeholder rows such as "no aplica").
type BuildRecordFunc func(r *RowReader) (any, bool)

// TableDefinition contains everything needed to locate and map a table.
type TableDefinition struct {
	Info        TableInfo
	FieldSpecs  []FieldSpec
	BuildRecord BuildRecordFunc

	// MinHeaderFields is the minimum number of recognized columns for a row
	// to count as this table's header. Defaults to 2.
	MinHeaderFields int

	terms [][]string // normalized synonyms per FieldSpec, filled by Register
}

// Span is the located extent of one table on a sheet.
// Rows and columns are 0-based; EndRow is exclusive.
type Span struct {
	Found     bool        `json:"found"`
	HeaderRow int         `json:"header_row"`
	StartRow  int         `json:"start_row"`
	StartCol  int         `json:"start_col"`
	EndCol    int         `json:"end_col"`
	EndRow    int         `json:"end_row"`
	Columns   HeaderIndex `json:"columns,omitempty"`
	Score     int         `json:"score"`
	Exact     int         `json:"exact"`
}

// Rows returns the number of data rows in the span.
func (s Span) Rows() int {
	if !s.Found {
		return 0
	}
	return s.EndRow - s.StartRow
}

// TableResult is the outcome of extracting one table.
type TableResult struct {
	Info     TableInfo        `json:"info"`
	Span     Span             `json:"span"`
	Records  []any            `json:"records"`
	Warnings []schema.Warning `json:"warnings,omitempty"`
}

// Extraction is the outcome of extracting every registered table of a sheet.
type Extraction struct {
	Sheet    string           `json:"sheet"`
	Tables   []TableResult    `json:"tables"`
	Warnings []schema.Warning `json:"warnings,omitempty"`
}

// Table returns the result for key, if it was part of the extraction.
func (e Extraction) Table(key string) (TableResult, bool) {
	for _, t := range e.Tables {
		if t.Info.Key == key {
			return t, true
		}
	}
	return TableResult{}, false
}

// Records returns every mapped record in table order.
func (e Extraction) Records() []any {
	var out []any
	for _, t := range e.Tables {
		out = append(out, t.Records...)
	}
	return out
}
