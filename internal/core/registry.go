package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableDefinition)
	registryMu sync.RWMutex
)

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered or the
// definition has no fields.
func Register(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}
	if len(def.FieldSpecs) == 0 {
		panic(fmt.Sprintf("table %s has no field specs", def.Info.Key))
	}
	if def.MinHeaderFields <= 0 {
		def.MinHeaderFields = 2
	}
	def.terms = headerTerms(def.FieldSpecs)

	registry[def.Info.Key] = def
}

// Get returns a table definition by key.
// Returns false if not found.
func Get(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered table definitions.
// Sorted by sheet then by order for consistent ordering.
func All() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sortDefinitions(result)
	return result
}

// BySheet returns all table definitions that live on sheet.
// The sheet name is compared after header normalization, so
// "anexo  aplicaciones" finds "Anexo Aplicaciones".
func BySheet(sheet string) []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	want := NormalizeHeader(sheet)
	var result []TableDefinition
	for _, def := range registry {
		if NormalizeHeader(def.Info.Sheet) == want {
			result = append(result, def)
		}
	}

	sortDefinitions(result)
	return result
}

// Sheets returns all unique sheet names.
// Sorted alphabetically.
func Sheets() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Sheet] = true
	}

	sheets := make([]string, 0, len(seen))
	for s := range seen {
		sheets = append(sheets, s)
	}

	sort.Strings(sheets)
	return sheets
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// headerTerms normalizes the synonyms of every field once so header
// scanning compares plain strings. A field without synonyms matches its Name.
func headerTerms(specs []FieldSpec) [][]string {
	terms := make([][]string, len(specs))
	for i, spec := range specs {
		words := spec.Synonyms
		if len(words) == 0 {
			words = []string{spec.Name}
		}
		for _, w := range words {
			if n := NormalizeHeader(w); n != "" {
				terms[i] = append(terms[i], n)
			}
		}
	}
	return terms
}

func sortDefinitions(defs []TableDefinition) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Info.Sheet != defs[j].Info.Sheet {
			return defs[i].Info.Sheet < defs[j].Info.Sheet
		}
		if defs[i].Info.Order != defs[j].Info.Order {
			return defs[i].Info.Order < defs[j].Info.Order
		}
		return defs[i].Info.Key < defs[j].Info.Key
	})
}
