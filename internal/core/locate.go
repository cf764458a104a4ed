package core

// locate.go finds independently shaped tables on one sheet.
//
// Every row is scored as a possible header for every table definition:
//  1. Exact pass: a cell equal to a normalized synonym claims that field
//  2. Fuzzy pass: a remaining cell containing a synonym as whole words claims it
//
// Exact hits weigh twice as much as fuzzy hits. Candidates are then assigned
// greedily, best score first, so each row is claimed by at most one table and
// each table by at most one row. A table's data rows run until a blank row,
// the next claimed header, or the end of the sheet.

import (
	"fmt"
	"sort"

	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// headerCandidate is one row that could be a table's header.
type headerCandidate struct {
	def     TableDefinition
	row     int
	columns HeaderIndex
	exact   int
	score   int
}

// Locate finds the header and data rows of every definition in grid.
// Definitions whose header is not found get a Span with Found false.
// Ties between equally scored candidates are resolved deterministically and
// reported as HDR001 warnings.
func Locate(grid [][]string, defs []TableDefinition) (map[string]Span, []schema.Warning) {
	normalized := normalizeGrid(grid)

	var candidates []headerCandidate
	for _, def := range defs {
		terms := def.terms
		if terms == nil {
			terms = headerTerms(def.FieldSpecs)
		}
		for i, row := range normalized {
			if c, ok := matchHeader(row, def, terms); ok {
				c.row = i
				candidates = append(candidates, c)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.exact != b.exact {
			return a.exact > b.exact
		}
		if a.row != b.row {
			return a.row < b.row
		}
		return a.def.Info.Order < b.def.Info.Order
	})

	var warnings []schema.Warning
	chosen := make(map[string]headerCandidate)
	claimed := make(map[int]string)

	for i, c := range candidates {
		if _, done := chosen[c.def.Info.Key]; done {
			continue
		}
		if _, taken := claimed[c.row]; taken {
			continue
		}

		if rival, ok := findTie(candidates[i+1:], c, chosen, claimed); ok {
			warnings = append(warnings, ambiguityWarning(c, rival))
		}

		chosen[c.def.Info.Key] = c
		claimed[c.row] = c.def.Info.Key
	}

	spans := make(map[string]Span, len(defs))
	for _, def := range defs {
		c, ok := chosen[def.Info.Key]
		if !ok {
			spans[def.Info.Key] = Span{}
			continue
		}
		spans[def.Info.Key] = buildSpan(grid, c, claimed)
	}
	return spans, warnings
}

// matchHeader scores row as a header for def.
func matchHeader(row []string, def TableDefinition, terms [][]string) (headerCandidate, bool) {
	c := headerCandidate{def: def, columns: HeaderIndex{}}
	used := make([]bool, len(row))

	// Exact pass
	for col, cell := range row {
		if cell == "" {
			continue
		}
		for f, spec := range def.FieldSpecs {
			if _, taken := c.columns[spec.Name]; taken {
				continue
			}
			if matchesAny(cell, terms[f], false) {
				c.columns[spec.Name] = col
				used[col] = true
				c.exact++
				break
			}
		}
	}

	// Fuzzy pass
	for col, cell := range row {
		if cell == "" || used[col] {
			continue
		}
		for f, spec := range def.FieldSpecs {
			if _, taken := c.columns[spec.Name]; taken {
				continue
			}
			if matchesAny(cell, terms[f], true) {
				c.columns[spec.Name] = col
				used[col] = true
				break
			}
		}
	}

	for _, spec := range def.FieldSpecs {
		if _, ok := c.columns[spec.Name]; spec.Required && !ok {
			return headerCandidate{}, false
		}
	}

	minFields := def.MinHeaderFields
	if minFields <= 0 {
		minFields = 2
	}
	if len(c.columns) < minFields {
		return headerCandidate{}, false
	}

	c.score = 2*c.exact + (len(c.columns) - c.exact)
	return c, true
}

func matchesAny(cell string, terms []string, fuzzy bool) bool {
	for _, t := range terms {
		if cell == t || (fuzzy && containsWords(cell, t)) {
			return true
		}
	}
	return false
}

// findTie returns the next still-assignable candidate that scores exactly
// like c and competes with it for the same table or the same row.
func findTie(rest []headerCandidate, c headerCandidate, chosen map[string]headerCandidate, claimed map[int]string) (headerCandidate, bool) {
	for _, r := range rest {
		if r.score != c.score || r.exact != c.exact {
			return headerCandidate{}, false
		}
		if _, done := chosen[r.def.Info.Key]; done {
			continue
		}
		if _, taken := claimed[r.row]; taken {
			continue
		}
		if r.def.Info.Key == c.def.Info.Key || r.row == c.row {
			return r, true
		}
	}
	return headerCandidate{}, false
}

func ambiguityWarning(won, lost headerCandidate) schema.Warning {
	msg := fmt.Sprintf("rows %d and %d match the %s header equally; using row %d",
		won.row+1, lost.row+1, won.def.Info.Label, won.row+1)
	if won.row == lost.row {
		msg = fmt.Sprintf("row %d matches both the %s and %s headers equally; using %s",
			won.row+1, won.def.Info.Label, lost.def.Info.Label, won.def.Info.Label)
	}
	return schema.Warning{
		Code:    schema.WarnAmbiguousHeader,
		Table:   won.def.Info.Label,
		Row:     won.row + 1,
		Message: msg,
	}
}

// buildSpan walks down from the header row to find the table's data rows.
func buildSpan(grid [][]string, c headerCandidate, claimed map[int]string) Span {
	span := Span{
		Found:     true,
		HeaderRow: c.row,
		StartRow:  c.row + 1,
		StartCol:  -1,
		Columns:   c.columns,
		Score:     c.score,
		Exact:     c.exact,
	}
	for _, col := range c.columns {
		if span.StartCol < 0 || col < span.StartCol {
			span.StartCol = col
		}
		if col > span.EndCol {
			span.EndCol = col
		}
	}

	end := span.StartRow
	for end < len(grid) {
		if _, header := claimed[end]; header {
			break
		}
		if isEmptyRange(grid[end], span.StartCol, span.EndCol) {
			break
		}
		// A lone caption directly above the next table belongs to that table.
		if _, header := claimed[end+1]; header && countFilled(grid[end]) == 1 {
			break
		}
		end++
	}
	span.EndRow = end
	return span
}

func normalizeGrid(grid [][]string) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = NormalizeHeader(cell)
		}
	}
	return out
}

// isEmptyRange reports whether row has no data between columns from and to, inclusive.
func isEmptyRange(row []string, from, to int) bool {
	for i := from; i <= to && i < len(row); i++ {
		if !IsBlank(row[i]) {
			return false
		}
	}
	return true
}

func countFilled(row []string) int {
	n := 0
	for _, v := range row {
		if !IsBlank(v) {
			n++
		}
	}
	return n
}
