// Package core locates and maps the tables of a sizing spreadsheet.
//
// This package holds the extraction logic independent of any UI or transport
// layer. It reads an in-memory grid of cell text and never touches files,
// so web handlers, the CLI and tests use it unchanged.
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Each [TableDefinition]
// names the sheet it lives on, the header synonyms of each field and a
// BuildRecord function that turns one data row into an inventory record:
//
//	core.Register(core.TableDefinition{
//	    Info: core.TableInfo{Key: "databases", Sheet: "Anexo Aplicaciones", Label: "Databases"},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "engine", Required: true, Synonyms: []string{"base de datos", "database"}},
//	        {Name: "nodes", Type: core.FieldInt, Synonyms: []string{"nodos", "nodes"}},
//	    },
//	    BuildRecord: buildDatabase,
//	})
//
// # Extraction
//
// [ExtractSheet] runs in two steps:
//
//  1. [Locate] scores every row of the grid as a header for every table of
//     the sheet and assigns headers greedily, best match first
//  2. [MapTable] reads each data row through a [RowReader], which coerces
//     cells and records warnings instead of failing
//
// Absent tables yield empty results. Malformed cells, ambiguous headers and
// unnamed rows become [schema.Warning] values carried next to the records.
//
// # Error Handling
//
// Errors that stop a request are mapped to user-friendly messages with
// [MapError]. Each category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, format, missing sheet)
//   - REQ001-REQ002: Request errors (bad JSON, oversized body)
//   - UPL002-UPL005: Busy, cancelled or timed out
//   - RATE001, CFG001, ERR000
package core
