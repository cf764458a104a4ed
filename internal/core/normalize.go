package core

// normalize.go canonicalizes header and cell text so that spreadsheets typed
// by hand still match the synonym dictionaries:
//   - Case folding ("NODOS" == "nodos")
//   - Accent folding ("Aplicación" == "aplicacion")
//   - Punctuation removal ("¿Es web?" == "es web")
//   - Whitespace collapsing ("Cores   por\nnodo" == "cores por nodo")

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader returns the comparison form of a header or label.
func NormalizeHeader(s string) string {
	s = CleanCell(s)
	if s == "" {
		return ""
	}

	// Transformers and Casers carry state, so build them per call to stay
	// safe for concurrent requests.
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}
	s = cases.Fold().String(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// SameName reports whether two sheet or file names are the same after
// normalization, ignoring where words break: "Thousandeyes V1",
// "thousandeyes_v1" and "ThousandeyesV1" are one name.
func SameName(a, b string) bool {
	return nameKey(a) == nameKey(b)
}

func nameKey(s string) string {
	return strings.ReplaceAll(NormalizeHeader(s), " ", "")
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace (including non-breaking spaces)
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
// - Removes a UTF-8 byte order mark
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)

	// Remove leading '='
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	// Remove any surrounding quotes
	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// IsBlank reports whether a cell holds no data.
func IsBlank(s string) bool {
	return CleanCell(s) == ""
}

// containsWords reports whether the space separated words of needle appear
// as a contiguous run in haystack. Both must already be normalized.
func containsWords(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	if haystack == needle {
		return true
	}
	return strings.HasPrefix(haystack, needle+" ") ||
		strings.HasSuffix(haystack, " "+needle) ||
		strings.Contains(haystack, " "+needle+" ")
}
