package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ----------------------------------------------------------------------------
// ParseDecimal Tests
// ----------------------------------------------------------------------------

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue string
	}{
		// Valid: Basic numbers
		{name: "positive integer", input: "123", wantValid: true, wantValue: "123"},
		{name: "zero", input: "0", wantValid: true, wantValue: "0"},
		{name: "negative integer", input: "-456", wantValid: true, wantValue: "-456"},
		{name: "decimal number", input: "123.45", wantValid: true, wantValue: "123.45"},
		{name: "leading decimal point", input: ".99", wantValid: true, wantValue: "0.99"},

		// Valid: Separators
		{name: "thousands comma", input: "50,000", wantValid: true, wantValue: "50000"},
		{name: "decimal comma", input: "8,5", wantValid: true, wantValue: "8.5"},
		{name: "zero with decimal comma", input: "0,125", wantValid: true, wantValue: "0.125"},
		{name: "european grouping", input: "1.234,56", wantValid: true, wantValue: "1234.56"},
		{name: "us grouping", input: "1,234,567.89", wantValid: true, wantValue: "1234567.89"},
		{name: "space grouping", input: "1 000", wantValid: true, wantValue: "1000"},

		// Valid: Noise
		{name: "dollar sign", input: "$1,234.56", wantValid: true, wantValue: "1234.56"},
		{name: "euro sign", input: "€ 99", wantValid: true, wantValue: "99"},
		{name: "accounting negative", input: "(123.45)", wantValid: true, wantValue: "-123.45"},
		{name: "unit suffix", input: "16 VCPU", wantValid: true, wantValue: "16"},
		{name: "label prefix", input: "Nodo: 3", wantValid: true, wantValue: "3"},
		{name: "excel formula prefix", input: `="42"`, wantValid: true, wantValue: "42"},
		{name: "surrounding whitespace", input: "  7  ", wantValid: true, wantValue: "7"},

		// Invalid
		{name: "empty string", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "letters only", input: "abc", wantValid: false},
		{name: "placeholder dash", input: "-", wantValid: false},
		{name: "two numbers", input: "2 x 8", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseDecimal(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			want := decimal.RequireFromString(tt.wantValue)
			if !got.Equal(want) {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseInt Tests
// ----------------------------------------------------------------------------

func TestParseInt(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		want      int
	}{
		{"8", true, 8},
		{"8.0", true, 8},
		{"4.9", true, 4},
		{"12 cores", true, 12},
		{"1,500", true, 1500},
		{"-3", true, -3},
		{"", false, 0},
		{"n/a", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseInt(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseInt(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if got != tt.want {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseCount Tests
// ----------------------------------------------------------------------------

func TestParseCount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      int
	}{
		{name: "plain", input: "2000", wantValid: true, want: 2000},
		{name: "with unit text", input: "2000 usuarios", wantValid: true, want: 2000},
		{name: "thousands comma", input: "50,000", wantValid: true, want: 50000},
		{name: "k suffix", input: "50k", wantValid: true, want: 50000},
		{name: "K suffix with space", input: "50 K", wantValid: true, want: 50000},
		{name: "M suffix", input: "1.5M", wantValid: true, want: 1500000},
		{name: "mil suffix", input: "2 mil", wantValid: true, want: 2000},
		{name: "decimal comma mil", input: "1,5 mil", wantValid: true, want: 1500},
		{name: "MM suffix", input: "3 MM", wantValid: true, want: 3000000},
		{name: "word starting with m is not a suffix", input: "10 minutos", wantValid: true, want: 10},
		{name: "no number", input: "ninguno", wantValid: false},
		{name: "empty", input: "", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCount(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseCount(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseBool Tests
// ----------------------------------------------------------------------------

func TestParseBool(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantBool  bool
	}{
		// Valid: True values
		{name: "si with accent", input: "Sí", wantValid: true, wantBool: true},
		{name: "SI uppercase", input: "SI", wantValid: true, wantBool: true},
		{name: "yes", input: "yes", wantValid: true, wantBool: true},
		{name: "TRUE", input: "TRUE", wantValid: true, wantBool: true},
		{name: "one", input: "1", wantValid: true, wantBool: true},
		{name: "verdadero", input: "Verdadero", wantValid: true, wantBool: true},
		{name: "x mark", input: "x", wantValid: true, wantBool: true},

		// Valid: False values
		{name: "No", input: "No", wantValid: true, wantBool: false},
		{name: "zero", input: "0", wantValid: true, wantBool: false},
		{name: "falso", input: "FALSO", wantValid: true, wantBool: false},
		{name: "f", input: "f", wantValid: true, wantBool: false},

		// Invalid
		{name: "maybe", input: "tal vez", wantValid: false},
		{name: "empty", input: "", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBool(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseBool(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if got != tt.wantBool {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.input, got, tt.wantBool)
			}
		})
	}
}
