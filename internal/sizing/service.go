// Package sizing is the programmatic entry point used by the web server and
// the command line: it extracts inventories from sheet grids, runs the
// license and ThousandEyes engines, and sizes whole workbook files.
package sizing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/core/tables"
	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/logging"
	"github.com/JonMunkholm/appdsizer/internal/schema"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
	"github.com/JonMunkholm/appdsizer/internal/workbook"
)

// Options configures a Service. Zero limiter values select the defaults.
type Options struct {
	License      license.Config
	ThousandEyes thousandeyes.Config

	MaxConcurrentParses int
	MaxWaitTime         time.Duration
}

// DefaultOptions returns the published constants and default limits.
func DefaultOptions() Options {
	return Options{
		License:      license.DefaultConfig(),
		ThousandEyes: thousandeyes.DefaultConfig(),
	}
}

// Service runs extractions and calculations. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	license *license.Engine
	te      *thousandeyes.Engine
	limiter *ParseLimiter
}

// NewService builds both engines from opts. It fails if any constant is invalid.
func NewService(opts Options) (*Service, error) {
	lic, err := license.NewEngine(opts.License)
	if err != nil {
		return nil, err
	}
	te, err := thousandeyes.NewEngine(opts.ThousandEyes)
	if err != nil {
		return nil, err
	}
	return &Service{
		license: lic,
		te:      te,
		limiter: NewParseLimiter(opts.MaxConcurrentParses, opts.MaxWaitTime),
	}, nil
}

// Limiter exposes the workbook parse limiter for health checks and shutdown.
func (s *Service) Limiter() *ParseLimiter {
	return s.limiter
}

// LicenseConfig returns the license constants in use.
func (s *Service) LicenseConfig() license.Config {
	return s.license.Config()
}

// Extract reads the inventory from the grid of the sheet named sheet.
func (s *Service) Extract(grid [][]string, sheet string) (schema.Inventory, []schema.Warning, error) {
	return tables.ExtractInventory(grid, sheet)
}

// ExtractTests reads ThousandEyes tests from a grid.
func (s *Service) ExtractTests(grid [][]string) ([]schema.MonitoringTest, []schema.Warning) {
	return tables.ExtractTests(grid)
}

// Calculate sizes an inventory. It never fails.
func (s *Service) Calculate(inv schema.Inventory) license.Result {
	return s.license.Calculate(inv)
}

// CalculateThousandEyes meters monitoring tests. It never fails.
func (s *Service) CalculateThousandEyes(tests []schema.MonitoringTest) thousandeyes.Result {
	return s.te.Calculate(tests)
}

// Parsed holds the records extracted from one workbook.
type Parsed struct {
	FileName  string                  `json:"file_name"`
	Sheets    []string                `json:"sheets"`
	Inventory schema.Inventory        `json:"inventory"`
	Tests     []schema.MonitoringTest `json:"thousandeyes_tests"`

	// Warnings holds every extraction warning of both sheets, including
	// header warnings that belong to no record.
	Warnings []schema.Warning `json:"warnings,omitempty"`
}

// Report is the complete sizing of one workbook.
//
// Warnings is the report's only warning list: extraction warnings followed
// by those the engines raised. License.Warnings and
// ThousandEyes.Warnings are left empty.
type Report struct {
	CalculationID string    `json:"calculation_id"`
	CreatedAt     time.Time `json:"created_at"`
	Parsed

	License      license.Result      `json:"license"`
	ThousandEyes thousandeyes.Result `json:"thousandeyes"`
}

// ParseWorkbook reads a workbook and extracts the inventory and the
// ThousandEyes sheet concurrently. A workbook needs at least one of the two
// sheets. Parsing waits for a slot of the parse limiter.
func (s *Service) ParseWorkbook(ctx context.Context, r io.Reader, name string) (*Parsed, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	wb, err := workbook.Open(r, name)
	if err != nil {
		return nil, err
	}

	invSheet, invErr := sheetFor(wb, tables.InventorySheet)
	teSheet, teErr := sheetFor(wb, tables.ThousandEyesSheet)
	if invErr != nil && teErr != nil {
		return nil, fmt.Errorf("%w: need %q or %q", workbook.ErrSheetNotFound, tables.InventorySheet, tables.ThousandEyesSheet)
	}

	p := &Parsed{FileName: wb.Name, Sheets: wb.SheetNames()}

	var invWarnings, teWarnings []schema.Warning
	g, gctx := errgroup.WithContext(ctx)

	if invErr == nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inv, warnings, err := s.Extract(invSheet.Rows, tables.InventorySheet)
			if err != nil {
				return err
			}
			p.Inventory, invWarnings = inv, warnings
			return nil
		})
	}
	if teErr == nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.Tests, teWarnings = s.ExtractTests(teSheet.Rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.Warnings = append(invWarnings, teWarnings...)
	return p, nil
}

// SizeWorkbook parses a workbook and runs both engines on its records.
func (s *Service) SizeWorkbook(ctx context.Context, r io.Reader, name string) (*Report, error) {
	start := time.Now()

	p, err := s.ParseWorkbook(ctx, r, name)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		CalculationID: uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Parsed:        *p,
		License:       s.Calculate(p.Inventory),
		ThousandEyes:  s.CalculateThousandEyes(p.Tests),
	}
	rep.Warnings = mergeWarnings(p.Warnings, rep.License.Warnings, rep.ThousandEyes.Warnings)
	rep.License.Warnings = nil
	rep.ThousandEyes.Warnings = nil

	logging.WithFields(ctx, "calculation_id", rep.CalculationID, "file", rep.FileName).Info("workbook sized",
		"sheets", len(rep.Sheets),
		"records", rep.Inventory.Len(),
		"tests", len(rep.Tests),
		"apm_cores", rep.License.APMCores,
		"te_units", rep.ThousandEyes.TotalUnits.String(),
		"warnings", len(rep.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rep, nil
}

// sheetFor finds the named sheet. The single sheet of a CSV file is the
// ThousandEyes sheet when the file is named after it and the inventory
// sheet otherwise.
func sheetFor(wb *workbook.Workbook, name string) (workbook.Sheet, error) {
	if wb.Format != workbook.FormatCSV || len(wb.Sheets) != 1 {
		return wb.Sheet(name)
	}

	csvSheet := wb.Sheets[0]
	isTests := core.SameName(csvSheet.Name, tables.ThousandEyesSheet)
	if isTests == (name == tables.ThousandEyesSheet) {
		return csvSheet, nil
	}
	return workbook.Sheet{}, fmt.Errorf("%w: %q in %s", workbook.ErrSheetNotFound, name, wb.Name)
}

// mergeWarnings appends to extracted the warnings the engines raised
// themselves. Engine results also carry the warnings of their records, which
// extracted already holds; each of those is skipped once.
func mergeWarnings(extracted []schema.Warning, results ...[]schema.Warning) []schema.Warning {
	pending := make(map[schema.Warning]int, len(extracted))
	for _, w := range extracted {
		pending[w]++
	}

	out := append([]schema.Warning(nil), extracted...)
	for _, list := range results {
		for _, w := range list {
			if pending[w] > 0 {
				pending[w]--
				continue
			}
			out = append(out, w)
		}
	}
	return out
}
