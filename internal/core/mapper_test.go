package core

import (
	"testing"

	"github.com/JonMunkholm/appdsizer/internal/schema"
)

func readerDef() *TableDefinition {
	return &TableDefinition{
		Info: TableInfo{Key: "things", Label: "Things"},
		FieldSpecs: []FieldSpec{
			{Name: "name"},
			{Name: "n", Type: FieldInt},
			{Name: "flag", Type: FieldBool},
			{Name: "count", Type: FieldCount, AllowEmpty: true},
			{Name: "nodes", Type: FieldInt, Default: "1"},
			{Name: "os", Normalizer: func(s string) string { return s + "!" }},
		},
	}
}

func TestRowReader(t *testing.T) {
	cols := HeaderIndex{"name": 0, "n": 1, "flag": 2, "count": 3, "nodes": 4, "os": 5}
	r := NewRowReader(readerDef(), cols, []string{"", "-2", "yes", "1.5k", "", "linux"}, 10, 2)

	if got := r.Name("name"); got != "Things row 2" {
		t.Errorf("Name() = %q, want generated name", got)
	}
	if got := r.Int("n"); got != 0 {
		t.Errorf("Int(n) = %d, want 0 for a negative value", got)
	}
	if !r.Bool("flag") {
		t.Error("Bool(flag) = false, want true")
	}
	if got := r.Int("count"); got != 1500 {
		t.Errorf("Int(count) = %d, want 1500", got)
	}
	if got := r.Int("nodes"); got != 1 {
		t.Errorf("Int(nodes) = %d, want default 1", got)
	}
	if got := r.Text("os"); got != "linux!" {
		t.Errorf("Text(os) = %q, want normalized value", got)
	}

	ws := r.Warnings()
	if len(ws) != 2 {
		t.Fatalf("warnings = %v, want 2", ws)
	}
	if ws[0].Code != schema.WarnUnnamedRow || ws[1].Code != schema.WarnNegativeValue {
		t.Errorf("codes = %s, %s", ws[0].Code, ws[1].Code)
	}
	for _, w := range ws {
		if w.Table != "Things" || w.Row != 10 {
			t.Errorf("warning location = %q row %d, want Things row 10", w.Table, w.Row)
		}
	}
}

func TestRowReader_MissingValues(t *testing.T) {
	tests := []struct {
		name      string
		cols      HeaderIndex
		row       []string
		read      func(r *RowReader)
		wantCodes []string
	}{
		{
			name:      "blank required int",
			cols:      HeaderIndex{"n": 0},
			row:       []string{""},
			read:      func(r *RowReader) { r.Int("n") },
			wantCodes: []string{schema.WarnMissingValue},
		},
		{
			name:      "blank bool",
			cols:      HeaderIndex{"flag": 0},
			row:       []string{" "},
			read:      func(r *RowReader) { r.Bool("flag") },
			wantCodes: []string{schema.WarnMissingValue},
		},
		{
			name:      "blank allow-empty count",
			cols:      HeaderIndex{"count": 0},
			row:       []string{""},
			read:      func(r *RowReader) { r.Int("count") },
			wantCodes: nil,
		},
		{
			name:      "absent column",
			cols:      HeaderIndex{},
			row:       []string{"5"},
			read:      func(r *RowReader) { r.Int("n") },
			wantCodes: nil,
		},
		{
			name:      "short row",
			cols:      HeaderIndex{"n": 3},
			row:       []string{"5"},
			read:      func(r *RowReader) { r.Int("n") },
			wantCodes: []string{schema.WarnMissingValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRowReader(readerDef(), tt.cols, tt.row, 1, 1)
			tt.read(r)

			ws := r.Warnings()
			if len(ws) != len(tt.wantCodes) {
				t.Fatalf("warnings = %v, want codes %v", ws, tt.wantCodes)
			}
			for i, code := range tt.wantCodes {
				if ws[i].Code != code {
					t.Errorf("warning %d = %s, want %s", i, ws[i].Code, code)
				}
			}
		})
	}
}

func TestRowReader_Attach(t *testing.T) {
	r := NewRowReader(readerDef(), HeaderIndex{}, nil, 7, 1)
	r.Attach([]schema.Warning{{Code: schema.WarnSAPFragment, Field: "cores", Message: "x"}})

	ws := r.Warnings()
	if len(ws) != 1 {
		t.Fatalf("warnings = %v", ws)
	}
	if ws[0].Table != "Things" || ws[0].Row != 7 || ws[0].Field != "cores" {
		t.Errorf("attached warning = %+v", ws[0])
	}
}

func TestMapTable_SkipsRows(t *testing.T) {
	def := *readerDef()
	def.BuildRecord = func(r *RowReader) (any, bool) {
		name := r.Text("name")
		if name == "skip" {
			return nil, false
		}
		return name, true
	}

	grid := [][]string{{"name"}, {"a"}, {"skip"}, {"b"}}
	span := Span{Found: true, HeaderRow: 0, StartRow: 1, EndRow: 4, Columns: HeaderIndex{"name": 0}}

	res := MapTable(grid, def, span)
	if len(res.Records) != 2 || res.Records[0] != "a" || res.Records[1] != "b" {
		t.Errorf("records = %v, want [a b]", res.Records)
	}

	if got := MapTable(grid, def, Span{}); len(got.Records) != 0 {
		t.Errorf("absent span produced %d records", len(got.Records))
	}
}
