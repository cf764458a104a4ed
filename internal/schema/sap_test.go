package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseCoreDescription(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantTotal    int
		wantComps    int
		wantUnparsed int
	}{
		{
			name:      "two components",
			input:     "ASCS 2 VCPU, APP 16 VCPU",
			wantTotal: 18,
			wantComps: 2,
		},
		{
			name:      "multi word labels",
			input:     "ASCS 2 VCPU, Primario APP Server 16 VCPU",
			wantTotal: 18,
			wantComps: 2,
		},
		{
			name:      "lowercase units and glued number",
			input:     "db 8vcpu; app 4 cores",
			wantTotal: 12,
			wantComps: 2,
		},
		{
			name:      "bare number",
			input:     "4",
			wantTotal: 4,
			wantComps: 1,
		},
		{
			name:      "accented unit",
			input:     "HANA 32 núcleos",
			wantTotal: 32,
			wantComps: 1,
		},
		{
			name:         "one fragment unparseable",
			input:        "ASCS 2 VCPU, pendiente",
			wantTotal:    2,
			wantComps:    1,
			wantUnparsed: 1,
		},
		{
			name:         "no numbers at all",
			input:        "por definir",
			wantTotal:    0,
			wantUnparsed: 1,
		},
		{
			name:         "two numbers without unit",
			input:        "APP 2 x 8",
			wantTotal:    0,
			wantUnparsed: 1,
		},
		{
			name:      "two pairs in one fragment",
			input:     "ASCS 2 VCPU y APP 16 VCPU",
			wantTotal: 18,
			wantComps: 2,
		},
		{
			name:      "multiplied cores",
			input:     "APP 2x8 VCPU",
			wantTotal: 16,
			wantComps: 1,
		},
		{
			name:      "multiplied cores with times sign",
			input:     "APP 2 × 8 vcpu, ASCS 2 VCPU",
			wantTotal: 18,
			wantComps: 2,
		},
		{
			name:      "decimal point rounds up",
			input:     "ASCS 2.5 VCPU",
			wantTotal: 3,
			wantComps: 1,
		},
		{
			name:      "decimal comma is not a separator",
			input:     "ASCS 2,5 VCPU, APP 16 VCPU",
			wantTotal: 19,
			wantComps: 2,
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCoreDescription(tt.input)
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
			if len(got.Components) != tt.wantComps {
				t.Errorf("len(Components) = %d, want %d", len(got.Components), tt.wantComps)
			}
			if len(got.Unparsed) != tt.wantUnparsed {
				t.Errorf("len(Unparsed) = %d, want %d (%v)", len(got.Unparsed), tt.wantUnparsed, got.Unparsed)
			}
		})
	}
}

func TestParseCoreDescription_Labels(t *testing.T) {
	got := ParseCoreDescription("ASCS 2 VCPU, Primario APP Server 16 VCPU")
	if len(got.Components) != 2 {
		t.Fatalf("len(Components) = %d, want 2", len(got.Components))
	}
	want := []CoreComponent{
		{Label: "ASCS", Cores: 2, Unit: "VCPU"},
		{Label: "Primario APP Server", Cores: 16, Unit: "VCPU"},
	}
	for i, w := range want {
		if got.Components[i] != w {
			t.Errorf("Components[%d] = %+v, want %+v", i, got.Components[i], w)
		}
	}
}

func TestParseCoreDescription_Components(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        []CoreComponent
		wantRounded []string
	}{
		{
			name:  "connector between pairs",
			input: "ASCS 2 VCPU y APP 16 VCPU",
			want: []CoreComponent{
				{Label: "ASCS", Cores: 2, Unit: "VCPU"},
				{Label: "APP", Cores: 16, Unit: "VCPU"},
			},
		},
		{
			name:        "decimal stays one number",
			input:       "ASCS 2.5 VCPU",
			want:        []CoreComponent{{Label: "ASCS", Cores: 3, Unit: "VCPU"}},
			wantRounded: []string{"2.5"},
		},
		{
			name:  "product of two numbers",
			input: "APP 2x8 VCPU",
			want:  []CoreComponent{{Label: "APP", Cores: 16, Unit: "VCPU"}},
		},
		{
			name:        "fractional product",
			input:       "APP 3 x 1.5 cores",
			want:        []CoreComponent{{Label: "APP", Cores: 5, Unit: "CORES"}},
			wantRounded: []string{"3 x 1.5"},
		},
		{
			name:  "digits inside the label",
			input: "S4HANA 8 VCPU",
			want:  []CoreComponent{{Label: "S4HANA", Cores: 8, Unit: "VCPU"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCoreDescription(tt.input)
			if !reflect.DeepEqual(got.Components, tt.want) {
				t.Errorf("Components = %+v, want %+v", got.Components, tt.want)
			}
			if !reflect.DeepEqual(got.Rounded, tt.wantRounded) {
				t.Errorf("Rounded = %q, want %q", got.Rounded, tt.wantRounded)
			}
			if len(got.Unparsed) != 0 {
				t.Errorf("Unparsed = %q, want none", got.Unparsed)
			}
		})
	}
}

func TestNewSAPApplication_RoundedWarning(t *testing.T) {
	s := NewSAPApplication("ERP", "", "", 2, "ASCS 2.5 VCPU, APP 16 VCPU")
	if s.TotalCores() != 38 {
		t.Errorf("TotalCores() = %d, want 38", s.TotalCores())
	}
	if len(s.Warnings) != 1 || s.Warnings[0].Code != WarnSAPRounded || s.Warnings[0].Value != "2.5" {
		t.Errorf("warnings = %v, want one %s for 2.5", s.Warnings, WarnSAPRounded)
	}
}

func TestNewSAPApplication(t *testing.T) {
	s := NewSAPApplication("ERP", "", "", 1, "ASCS 2 VCPU, APP 16 VCPU")
	if s.TotalCores() != 18 {
		t.Errorf("TotalCores() = %d, want 18", s.TotalCores())
	}
	if len(s.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", s.Warnings)
	}
	if s.CoreDescription != "ASCS 2 VCPU, APP 16 VCPU" {
		t.Errorf("CoreDescription not preserved: %q", s.CoreDescription)
	}

	multi := NewSAPApplication("ERP", "", "", 2, "ASCS 2 VCPU, APP 16 VCPU")
	if multi.TotalCores() != 36 {
		t.Errorf("TotalCores() with 2 nodes = %d, want 36", multi.TotalCores())
	}
}

func TestNewSAPApplication_Unparseable(t *testing.T) {
	s := NewSAPApplication("ERP", "", "", 1, "sin dato")
	if s.TotalCores() != 0 {
		t.Errorf("TotalCores() = %d, want 0", s.TotalCores())
	}

	codes := map[string]bool{}
	for _, w := range s.Warnings {
		codes[w.Code] = true
	}
	if !codes[WarnSAPFragment] || !codes[WarnSAPNoCores] {
		t.Errorf("warnings = %v, want %s and %s", s.Warnings, WarnSAPFragment, WarnSAPNoCores)
	}
}

func TestSAPApplication_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNodes int
		wantCores int
	}{
		{
			name:      "string description",
			body:      `{"name":"ERP","nodes":1,"cores_str":"ASCS 2 VCPU, APP 16 VCPU"}`,
			wantNodes: 1,
			wantCores: 18,
		},
		{
			name:      "numeric description",
			body:      `{"name":"ERP","nodes":2,"cores_str":4}`,
			wantNodes: 2,
			wantCores: 8,
		},
		{
			name:      "nodes default to one",
			body:      `{"name":"ERP","cores_str":"APP 8 VCPU"}`,
			wantNodes: 1,
			wantCores: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SAPApplication
			if err := json.Unmarshal([]byte(tt.body), &s); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if s.Nodes != tt.wantNodes {
				t.Errorf("Nodes = %d, want %d", s.Nodes, tt.wantNodes)
			}
			if s.TotalCores() != tt.wantCores {
				t.Errorf("TotalCores() = %d, want %d", s.TotalCores(), tt.wantCores)
			}
		})
	}
}
