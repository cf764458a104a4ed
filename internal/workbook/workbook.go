// Package workbook reads sizing spreadsheets into raw cell grids.
//
// Excel workbooks (.xlsx, .xlsm) are read with excelize and keep their sheet
// names. A CSV file is a single sheet named after the file. Cell values are
// returned as displayed text; all interpretation happens in core.
package workbook

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/appdsizer/internal/core"
)

var (
	// ErrSheetNotFound is returned when a workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrEmptyFile is returned for a zero-byte upload.
	ErrEmptyFile = errors.New("empty file")
	// ErrUnsupportedType is returned for extensions other than .xlsx, .xlsm and .csv.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Format is the container format of a workbook.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Sheet is one named grid of cell text, row-major.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is a fully read spreadsheet file.
type Workbook struct {
	Name   string
	Format Format
	Sheets []Sheet
}

// FormatOf maps a file name to its format by extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedType, filepath.Ext(name))
	}
}

// Open reads the whole file from r. name selects the format by extension
// and names the sheet of a CSV file.
func Open(r io.Reader, name string) (*Workbook, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	wb := &Workbook{Name: filepath.Base(name), Format: format}

	switch format {
	case FormatCSV:
		rows, err := ReadCSV(data)
		if err != nil {
			return nil, err
		}
		stem := strings.TrimSuffix(wb.Name, filepath.Ext(wb.Name))
		wb.Sheets = []Sheet{{Name: stem, Rows: rows}}
	case FormatXLSX:
		sheets, err := readXLSX(data)
		if err != nil {
			return nil, err
		}
		wb.Sheets = sheets
	}
	return wb, nil
}

func readXLSX(data []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("invalid workbook: sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// ReadCSV parses CSV data into rows. Invalid UTF-8 is replaced, ragged rows
// and stray quotes are accepted. A semicolon delimiter is detected from the
// first line, as written by spreadsheet programs in comma-decimal locales.
func ReadCSV(data []byte) ([][]string, error) {
	data = sanitizeUTF8(data)
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = detectDelimiter(data)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('\uFFFD')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// SheetNames lists sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet finds a sheet by name, ignoring case, accents and spacing.
func (w *Workbook) Sheet(name string) (Sheet, error) {
	for _, s := range w.Sheets {
		if core.SameName(s.Name, name) {
			return s, nil
		}
	}
	return Sheet{}, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, name, w.Name)
}
