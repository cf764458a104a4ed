package core

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownSheet is returned when no table is registered for a sheet name.
var ErrUnknownSheet = errors.New("unknown sheet")

// ExtractSheet locates and maps every table registered for sheet.
// Tables missing from the grid produce empty results, not errors.
func ExtractSheet(grid [][]string, sheet string) (Extraction, error) {
	defs := BySheet(sheet)
	if len(defs) == 0 {
		return Extraction{}, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}
	return ExtractTables(grid, sheet, defs), nil
}

// ExtractTables locates and maps defs in grid.
func ExtractTables(grid [][]string, sheet string, defs []TableDefinition) Extraction {
	spans, warnings := Locate(grid, defs)

	ext := Extraction{Sheet: sheet, Warnings: warnings}
	for _, def := range defs {
		span := spans[def.Info.Key]
		res := MapTable(grid, def, span)

		if span.Found {
			slog.Debug("table located",
				"sheet", sheet,
				"table", def.Info.Key,
				"header_row", span.HeaderRow+1,
				"rows", span.Rows(),
				"records", len(res.Records),
				"score", span.Score,
			)
		} else {
			slog.Debug("table absent", "sheet", sheet, "table", def.Info.Key)
		}

		ext.Tables = append(ext.Tables, res)
		ext.Warnings = append(ext.Warnings, res.Warnings...)
	}
	return ext
}
