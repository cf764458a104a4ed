package tables

import (
	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// ThousandEyesSheet is the sheet holding the monitoring test table.
const ThousandEyesSheet = "ThousandeyesV1"

// KeyThousandEyesTests is the table key of the monitoring test table.
const KeyThousandEyesTests = "thousandeyes_tests"

func init() {
	registerThousandEyesTests()
}

func registerThousandEyesTests() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyThousandEyesTests,
			Sheet: ThousandEyesSheet,
			Label: "ThousandEyes Tests",
			Order: 1,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "test_type", Type: core.FieldText, Required: true,
				Synonyms: []string{"tipo de prueba", "tipo de test", "prueba", "test type", "test", "tipo"}},
			{Name: "interval", Type: core.FieldInt, Default: "5",
				Synonyms: []string{"intervalo", "intervalo min", "intervalo minutos", "frecuencia", "interval", "interval minutes"}},
			{Name: "agents", Type: core.FieldInt, Default: "1",
				Synonyms: []string{"numero de agentes", "no de agentes", "agentes", "monitores", "agents", "num agents", "number of agents"}},
			{Name: "agent_type", Type: core.FieldText, Default: "enterprise",
				Synonyms: []string{"tipo de agente", "tipo agente", "agent type"}},
			{Name: "timeout", Type: core.FieldInt, AllowEmpty: true,
				Synonyms: []string{"timeout", "timeout seg", "timeout segundos", "tiempo de espera"}},
			{Name: "rtp_duration", Type: core.FieldInt, AllowEmpty: true,
				Synonyms: []string{"duracion", "duracion seg", "duracion rtp", "duration", "rtp duration"}},
			{Name: "dns_servers", Type: core.FieldInt, AllowEmpty: true,
				Synonyms: []string{"servidores dns", "numero de servidores dns", "dns servers"}},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			// A test without a type cannot be priced.
			testType := r.Raw("test_type")
			if testType == "" || isPlaceholder(testType) {
				return nil, false
			}
			t := schema.MonitoringTest{
				TestType:           testType,
				IntervalMin:        r.Int("interval"),
				Agents:             r.Int("agents"),
				AgentType:          r.Text("agent_type"),
				TimeoutSeconds:     r.Int("timeout"),
				RTPDurationSeconds: r.Int("rtp_duration"),
				DNSServers:         r.Int("dns_servers"),
			}
			t.Warnings = r.Warnings()
			return t, true
		},
	})
}
