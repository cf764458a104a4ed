// Package tables defines the tables of the sizing workbook and registers
// them with the core registry at init time. Callers use ExtractInventory and
// ExtractTests; importing the package is enough to register every table.
package tables

import (
	"fmt"

	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// ExtractInventory reads the inventory tables from grid.
// sheet must name the inventory sheet (compared case, accent and whitespace
// insensitively); otherwise core.ErrUnknownSheet is returned.
func ExtractInventory(grid [][]string, sheet string) (schema.Inventory, []schema.Warning, error) {
	var inv schema.Inventory

	if !core.SameName(sheet, InventorySheet) {
		return inv, nil, fmt.Errorf("%w: %q (want %q)", core.ErrUnknownSheet, sheet, InventorySheet)
	}

	ext, err := core.ExtractSheet(grid, InventorySheet)
	if err != nil {
		return inv, nil, err
	}

	for _, rec := range ext.Records() {
		inv.Add(rec)
	}
	return inv, ext.Warnings, nil
}

// ExtractTests reads the ThousandEyes test table from grid.
// A grid without the table yields no tests.
func ExtractTests(grid [][]string) ([]schema.MonitoringTest, []schema.Warning) {
	ext := core.ExtractTables(grid, ThousandEyesSheet, core.BySheet(ThousandEyesSheet))

	var tests []schema.MonitoringTest
	for _, rec := range ext.Records() {
		if t, ok := rec.(schema.MonitoringTest); ok {
			tests = append(tests, t)
		}
	}
	return tests, ext.Warnings
}
