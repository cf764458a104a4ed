package core

import (
	"errors"
	"testing"

	"github.com/JonMunkholm/appdsizer/internal/schema"
)

type testRecord struct {
	Kind     string
	Name     string
	Nodes    int
	Cores    int
	Web      bool
	Sessions int
	Warnings []schema.Warning
}

func testDefs() []TableDefinition {
	apps := TableDefinition{
		Info: TableInfo{Key: "apps", Sheet: "Test", Label: "Applications", Order: 1},
		FieldSpecs: []FieldSpec{
			{Name: "name", Required: true, Synonyms: []string{"aplicacion", "nombre de la aplicacion"}},
			{Name: "server", AllowEmpty: true, Synonyms: []string{"servidor"}},
			{Name: "nodes", Type: FieldInt, Required: true, Synonyms: []string{"nodos", "numero de nodos"}},
			{Name: "cores", Type: FieldInt, Required: true, Synonyms: []string{"cores por nodo", "cores"}},
			{Name: "web", Type: FieldBool, Synonyms: []string{"es web"}},
			{Name: "sessions", Type: FieldCount, AllowEmpty: true, Synonyms: []string{"sesiones"}},
		},
		BuildRecord: func(r *RowReader) (any, bool) {
			rec := testRecord{
				Kind:     "app",
				Name:     r.Name("name"),
				Nodes:    r.Int("nodes"),
				Cores:    r.Int("cores"),
				Web:      r.Bool("web"),
				Sessions: r.Int("sessions"),
			}
			rec.Warnings = r.Warnings()
			return rec, true
		},
	}
	dbs := TableDefinition{
		Info: TableInfo{Key: "dbs", Sheet: "Test", Label: "Databases", Order: 2},
		FieldSpecs: []FieldSpec{
			{Name: "engine", Required: true, Synonyms: []string{"base de datos", "bd"}},
			{Name: "version", AllowEmpty: true, Synonyms: []string{"version"}},
			{Name: "cores", Type: FieldInt, Required: true, Synonyms: []string{"cores por nodo"}},
			{Name: "nodes", Type: FieldInt, Required: true, Synonyms: []string{"nodos"}},
			{Name: "related", AllowEmpty: true, Synonyms: []string{"aplicacion relacionada"}},
		},
		BuildRecord: func(r *RowReader) (any, bool) {
			rec := testRecord{Kind: "db", Name: r.Name("engine"), Nodes: r.Int("nodes"), Cores: r.Int("cores")}
			rec.Warnings = r.Warnings()
			return rec, true
		},
	}
	return []TableDefinition{apps, dbs}
}

func testGrid() [][]string {
	return [][]string{
		{"", "Anexo Aplicaciones"},
		{},
		{"", "Aplicación", "Servidor", "Nodos", "Cores por nodo", "¿Es web?", "Sesiones"},
		{"", "App1", "Jboss", "4", "8", "Sí", "2000 usuarios"},
		{"", "App2", "", "1", "abc", "quizá", ""},
		{},
		{"", "Bases de datos"},
		{"", "Base de datos", "Versión", "Cores por nodo", "Nodos", "Aplicación relacionada"},
		{"", "Oracle", "11g", "12", "2", "App1"},
	}
}

func TestLocate(t *testing.T) {
	spans, warnings := Locate(testGrid(), testDefs())

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	tests := []struct {
		key       string
		headerRow int
		startRow  int
		endRow    int
		startCol  int
		endCol    int
	}{
		{"apps", 2, 3, 5, 1, 6},
		{"dbs", 7, 8, 9, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := spans[tt.key]
			if !s.Found {
				t.Fatal("span not found")
			}
			if s.HeaderRow != tt.headerRow || s.StartRow != tt.startRow || s.EndRow != tt.endRow {
				t.Errorf("rows = header %d, [%d,%d), want header %d, [%d,%d)",
					s.HeaderRow, s.StartRow, s.EndRow, tt.headerRow, tt.startRow, tt.endRow)
			}
			if s.StartCol != tt.startCol || s.EndCol != tt.endCol {
				t.Errorf("cols = [%d,%d], want [%d,%d]", s.StartCol, s.EndCol, tt.startCol, tt.endCol)
			}
		})
	}

	if got := spans["dbs"].Columns["related"]; got != 5 {
		t.Errorf("dbs related column = %d, want 5", got)
	}
}

func TestLocate_AbsentTable(t *testing.T) {
	grid := testGrid()[:5]
	spans, _ := Locate(grid, testDefs())

	if !spans["apps"].Found {
		t.Error("apps should be found")
	}
	if spans["dbs"].Found {
		t.Error("dbs should be absent")
	}
	if spans["dbs"].Rows() != 0 {
		t.Errorf("absent span Rows() = %d, want 0", spans["dbs"].Rows())
	}
}

func TestLocate_CaptionEndsTable(t *testing.T) {
	grid := [][]string{
		{"Aplicación", "Nodos", "Cores"},
		{"App1", "1", "4"},
		{"Bases de datos"},
		{"Base de datos", "Cores por nodo", "Nodos"},
		{"Oracle", "4", "2"},
	}
	spans, _ := Locate(grid, testDefs())

	if got := spans["apps"].EndRow; got != 2 {
		t.Errorf("apps EndRow = %d, want 2", got)
	}
	if got := spans["dbs"].HeaderRow; got != 3 {
		t.Errorf("dbs HeaderRow = %d, want 3", got)
	}
}

func TestLocate_TieWarns(t *testing.T) {
	grid := [][]string{
		{"Aplicación", "Nodos", "Cores"},
		{"App1", "1", "4"},
		{},
		{"Aplicación", "Nodos", "Cores"},
		{"App2", "2", "4"},
	}
	spans, warnings := Locate(grid, testDefs())

	if got := spans["apps"].HeaderRow; got != 0 {
		t.Errorf("apps HeaderRow = %d, want first row", got)
	}
	if len(warnings) != 1 || warnings[0].Code != schema.WarnAmbiguousHeader {
		t.Fatalf("warnings = %v, want one HDR001", warnings)
	}
}

func TestLocate_ExactBeatsFuzzy(t *testing.T) {
	// Row 0 only matches apps through the fuzzy "aplicacion" in "Aplicación relacionada".
	grid := [][]string{
		{"Base de datos", "Cores por nodo", "Nodos", "Aplicación relacionada"},
		{"Oracle", "4", "2", "App1"},
	}
	spans, _ := Locate(grid, testDefs())

	if !spans["dbs"].Found || spans["dbs"].HeaderRow != 0 {
		t.Errorf("dbs span = %+v, want header row 0", spans["dbs"])
	}
	if spans["apps"].Found {
		t.Error("apps should not claim the databases header")
	}
}

func TestExtractTables(t *testing.T) {
	ext := ExtractTables(testGrid(), "Test", testDefs())

	apps, ok := ext.Table("apps")
	if !ok {
		t.Fatal("apps table missing from extraction")
	}
	if len(apps.Records) != 2 {
		t.Fatalf("apps records = %d, want 2", len(apps.Records))
	}

	app1 := apps.Records[0].(testRecord)
	if app1.Name != "App1" || app1.Nodes != 4 || app1.Cores != 8 || !app1.Web || app1.Sessions != 2000 {
		t.Errorf("App1 = %+v", app1)
	}

	app2 := apps.Records[1].(testRecord)
	if app2.Cores != 0 || app2.Web {
		t.Errorf("App2 = %+v, want zero cores and not web", app2)
	}
	codes := map[string]bool{}
	for _, w := range app2.Warnings {
		codes[w.Code] = true
		if w.Row != 5 {
			t.Errorf("warning row = %d, want sheet row 5", w.Row)
		}
	}
	if !codes[schema.WarnMalformedNumber] || !codes[schema.WarnMalformedBool] {
		t.Errorf("App2 warnings = %v, want CELL001 and CELL002", app2.Warnings)
	}

	if got := len(ext.Records()); got != 3 {
		t.Errorf("Records() = %d, want 3", got)
	}
	if got := len(ext.Warnings); got != 2 {
		t.Errorf("extraction warnings = %d, want 2", got)
	}
}

func TestExtractSheet_UnknownSheet(t *testing.T) {
	_, err := ExtractSheet(testGrid(), "No Such Sheet")
	if !errors.Is(err, ErrUnknownSheet) {
		t.Errorf("err = %v, want ErrUnknownSheet", err)
	}
}
