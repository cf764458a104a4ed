package core

// mapper.go turns the data rows of a located table into typed records.
//
// Cell coercion never fails: a malformed, negative or missing value becomes
// zero (or false) and a warning is recorded against the row. The warnings
// travel with the record the table's BuildRecord returns.

import (
	"fmt"

	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// RowReader gives a table's BuildRecord typed access to one data row.
type RowReader struct {
	def      *TableDefinition
	row      []string
	cols     HeaderIndex
	line     int
	index    int
	warnings []schema.Warning
}

// NewRowReader creates a reader for row. line is the 1-based sheet row and
// index the 1-based position of the row within its table.
func NewRowReader(def *TableDefinition, cols HeaderIndex, row []string, line, index int) *RowReader {
	return &RowReader{def: def, row: row, cols: cols, line: line, index: index}
}

// Line returns the 1-based sheet row number.
func (r *RowReader) Line() int { return r.line }

// Index returns the 1-based position of the row within its table.
func (r *RowReader) Index() int { return r.index }

// Has reports whether the field's column was found in the header.
func (r *RowReader) Has(field string) bool {
	_, ok := r.cols[field]
	return ok
}

// Raw returns the cleaned cell for field, or "" when the column is absent.
// The field's Normalizer is applied to non-blank values.
func (r *RowReader) Raw(field string) string {
	pos, ok := r.cols[field]
	if !ok || pos >= len(r.row) {
		return ""
	}
	v := CleanCell(r.row[pos])
	if spec, ok := r.spec(field); ok && spec.Normalizer != nil && v != "" {
		v = spec.Normalizer(v)
	}
	return v
}

// Text returns the cell for field, falling back to the field's Default.
func (r *RowReader) Text(field string) string {
	v, _ := r.valueOrDefault(field)
	return v
}

// Int returns the cell for field as a non-negative integer.
// FieldCount fields accept magnitude suffixes ("50k", "1.5M").
func (r *RowReader) Int(field string) int {
	v, ok := r.valueOrDefault(field)
	if !ok {
		return 0
	}

	spec, _ := r.spec(field)
	parse := ParseInt
	if spec.Type == FieldCount {
		parse = ParseCount
	}

	n, ok := parse(v)
	if !ok {
		r.Warn(schema.WarnMalformedNumber, field, v, fmt.Sprintf("%q is not a valid %s; using 0", v, fieldTypeName(spec.Type)))
		return 0
	}
	if n < 0 {
		r.Warn(schema.WarnNegativeValue, field, v, fmt.Sprintf("negative value %d; using 0", n))
		return 0
	}
	return n
}

// Bool returns the cell for field as a boolean. Unrecognized text is false.
func (r *RowReader) Bool(field string) bool {
	v, ok := r.valueOrDefault(field)
	if !ok {
		return false
	}
	b, ok := ParseBool(v)
	if !ok {
		r.Warn(schema.WarnMalformedBool, field, v, fmt.Sprintf("%q is not yes/no; using no", v))
		return false
	}
	return b
}

// Name returns the text of field, or a generated "<Table> row N" name when
// the cell is blank.
func (r *RowReader) Name(field string) string {
	if v := r.Raw(field); v != "" {
		return v
	}
	name := fmt.Sprintf("%s row %d", r.def.Info.Label, r.index)
	r.Warn(schema.WarnUnnamedRow, field, "", fmt.Sprintf("row has data but no name; named %q", name))
	return name
}

// Warn records a warning against the current row.
func (r *RowReader) Warn(code, field, value, msg string) {
	r.warnings = append(r.warnings, schema.Warning{
		Code:    code,
		Table:   r.def.Info.Label,
		Row:     r.line,
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

// Attach adopts warnings produced outside the reader (for example while
// parsing a free-text field) and stamps them with this row's location.
func (r *RowReader) Attach(ws []schema.Warning) {
	for _, w := range ws {
		w.Table = r.def.Info.Label
		w.Row = r.line
		r.warnings = append(r.warnings, w)
	}
}

// Warnings returns everything recorded for this row so far.
func (r *RowReader) Warnings() []schema.Warning {
	return r.warnings
}

func (r *RowReader) spec(field string) (FieldSpec, bool) {
	for _, s := range r.def.FieldSpecs {
		if s.Name == field {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// valueOrDefault returns the cell or the field's Default. ok is false when
// neither holds a value; a located column that may not be empty then gets
// a missing-value warning.
func (r *RowReader) valueOrDefault(field string) (string, bool) {
	if v := r.Raw(field); v != "" {
		return v, true
	}
	spec, _ := r.spec(field)
	if spec.Default != "" {
		return spec.Default, true
	}
	if r.Has(field) && !spec.AllowEmpty {
		r.Warn(schema.WarnMissingValue, field, "", "value is missing; using the empty value")
	}
	return "", false
}

// MapTable builds records from every data row of span.
// Rows for which BuildRecord returns false are skipped.
func MapTable(grid [][]string, def TableDefinition, span Span) TableResult {
	res := TableResult{Info: def.Info, Span: span}
	if !span.Found {
		return res
	}

	for i := span.StartRow; i < span.EndRow && i < len(grid); i++ {
		r := NewRowReader(&def, span.Columns, grid[i], i+1, i-span.StartRow+1)
		rec, ok := def.BuildRecord(r)
		if !ok {
			continue
		}
		res.Records = append(res.Records, rec)
		res.Warnings = append(res.Warnings, r.Warnings()...)
	}
	return res
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldInt:
		return "integer"
	case FieldCount:
		return "count"
	case FieldBool:
		return "yes/no value"
	default:
		return "text"
	}
}
