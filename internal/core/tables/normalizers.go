package tables

import (
	"strings"

	"github.com/JonMunkholm/appdsizer/internal/core"
)

// placeholders are cell values that mark a row as intentionally empty.
// Keys are in NormalizeHeader form.
var placeholders = map[string]bool{
	"no aplica":      true,
	"n a":            true,
	"na":             true,
	"nan":            true,
	"ninguno":        true,
	"ninguna":        true,
	"none":           true,
	"not applicable": true,
}

// isPlaceholder reports whether s is a "no aplica" style marker, including
// punctuation-only cells such as "-" or "--". Blank cells are not placeholders.
func isPlaceholder(s string) bool {
	if core.IsBlank(s) {
		return false
	}
	key := core.NormalizeHeader(s)
	return key == "" || placeholders[key]
}

// collapseSpaces joins the words of s with single spaces, so names typed
// across wrapped cells compare equal.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
