package schema

import "fmt"

// Warning codes for recoverable data-quality problems.
// Extraction and calculation never fail on these; they are reported next to
// the result so a user can fix the source sheet.
const (
	WarnMalformedNumber = "CELL001"
	WarnMalformedBool   = "CELL002"
	WarnNegativeValue   = "CELL003"
	WarnMissingValue    = "CELL004"
	WarnUnnamedRow      = "ROW001"
	WarnAmbiguousHeader = "HDR001"
	WarnSAPFragment     = "SAP001"
	WarnSAPNoCores      = "SAP002"
	WarnSAPRounded      = "SAP003"
	WarnUnknownTestType = "TE001"
	WarnUnknownAgent    = "TE002"
	WarnIntervalClamped = "TE003"
	WarnTimeoutClamped  = "TE004"
)

// Warning describes one recoverable problem found in the input.
type Warning struct {
	Code    string `json:"code"`
	Table   string `json:"table,omitempty"`
	Row     int    `json:"row,omitempty"` // 1-based sheet row, 0 when not from a sheet
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	loc := w.Table
	if w.Row > 0 {
		loc = fmt.Sprintf("%s row %d", loc, w.Row)
	}
	if w.Field != "" {
		loc = fmt.Sprintf("%s [%s]", loc, w.Field)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s %s: %s", w.Code, loc, w.Message)
}
