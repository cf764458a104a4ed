package core

// convert.go provides type coercion for spreadsheet cells.
//
// These functions handle the messy reality of hand-typed sizing sheets:
//   - Currency symbols and thousands separators in numbers
//   - Decimal commas ("8,5") next to thousands commas ("50,000")
//   - Unit text around a number ("8 cores", "2000 usuarios")
//   - Magnitude suffixes on counts ("50k", "1.5M", "2 mil")
//   - Spanish and English booleans (sí/no, yes/no, true/false, 1/0)
//   - Excel formula prefixes (="value")
//
// Every Parse* function reports ok=false instead of failing, so the caller can
// substitute a zero value and record a warning.

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a plain numeric literal after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// numberToken finds numeric runs inside surrounding text.
var numberToken = regexp.MustCompile(`[+-]?\d+(?:[.,]\d+)*`)

// countRegex finds the first number with an optional magnitude suffix.
var countRegex = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*)\s*(k|mil|mm|m)?\b`)

var currencyReplacer = strings.NewReplacer(
	"$", "",
	"\u20ac", "", // Euro
	"\u00a3", "", // Pound
	" ", "",
	"\u00a0", "",
)

var (
	trueWords  = map[string]bool{"si": true, "s": true, "yes": true, "y": true, "true": true, "t": true, "1": true, "verdadero": true, "x": true}
	falseWords = map[string]bool{"no": true, "n": true, "false": true, "f": true, "0": true, "falso": true}
)

// ParseDecimal converts a cell to a decimal.
// Handles currency symbols, thousands separators, accounting negatives
// "(123.45)" and a single number embedded in text ("16 VCPU").
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero, false
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = currencyReplacer.Replace(s)

	if !numericRegex.MatchString(normalizeSeparators(s)) {
		// Fall back to a single number surrounded by unit text.
		tokens := numberToken.FindAllString(s, -1)
		if len(tokens) != 1 {
			return decimal.Zero, false
		}
		s = tokens[0]
	}
	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if isNegative {
		d = d.Neg()
	}
	return d, true
}

// ParseInt converts a cell to an int, truncating any fractional part
// ("8.0" from Excel becomes 8).
func ParseInt(s string) (int, bool) {
	d, ok := ParseDecimal(s)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// ParseCount converts a count with an optional magnitude suffix.
// "2000 usuarios" = 2000, "50k" = 50000, "1.5M" = 1500000, "2 mil" = 2000.
func ParseCount(s string) (int, bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}

	m := countRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	d, err := decimal.NewFromString(normalizeSeparators(m[1]))
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "k", "mil":
		d = d.Mul(decimal.NewFromInt(1_000))
	case "m", "mm":
		d = d.Mul(decimal.NewFromInt(1_000_000))
	}
	return int(d.IntPart()), true
}

// ParseBool converts a cell to a bool.
// Accepts sí/no, yes/no, true/false, verdadero/falso, 1/0 and single letters,
// in any case and with or without accents.
func ParseBool(s string) (value bool, ok bool) {
	key := NormalizeHeader(s)
	switch {
	case trueWords[key]:
		return true, true
	case falseWords[key]:
		return false, true
	default:
		return false, false
	}
}

// normalizeSeparators rewrites a number so that '.' is the only decimal
// separator and thousands separators are removed.
//
// When both '.' and ',' appear, the last one is the decimal separator.
// A lone separator followed by exactly three digits is a thousands separator
// unless the integer part is zero ("1,500" = 1500, "0.125" = 0.125).
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")

	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")

	case commas == 1:
		if isThousandsGroup(s, ",") {
			return strings.Replace(s, ",", "", 1)
		}
		return strings.Replace(s, ",", ".", 1)
	case dots == 1:
		if isThousandsGroup(s, ".") {
			return strings.Replace(s, ".", "", 1)
		}
	}
	return s
}

func isThousandsGroup(s, sep string) bool {
	i := strings.Index(s, sep)
	intPart := strings.TrimLeft(s[:i], "+-")
	frac := s[i+1:]
	if len(frac) != 3 || intPart == "" || strings.TrimLeft(intPart, "0") == "" {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
