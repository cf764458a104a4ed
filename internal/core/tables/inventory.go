package tables

import (
	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// InventorySheet is the sheet holding the five inventory tables.
const InventorySheet = "Anexo Aplicaciones"

// Table keys on the inventory sheet.
const (
	KeyApplications  = "applications"
	KeyDatabases     = "databases"
	KeySAP           = "sap"
	KeyMicroservices = "microservices"
	KeyMobileApps    = "mobile_apps"
)

// Synonym sets shared by several tables.
var (
	nodesSynonyms    = []string{"nodos", "numero de nodos", "no de nodos", "cantidad de nodos", "nodes", "number of nodes", "instancias"}
	coresSynonyms    = []string{"cores por nodo", "cpu por nodo", "vcpu por nodo", "nucleos por nodo", "cores per node", "cores", "cpus", "vcpu", "nucleos"}
	sessionsSynonyms = []string{"sesiones usuarios al mes", "sesiones usuarios por mes", "sesiones usuarios", "usuarios al mes", "sesiones", "usuarios", "monthly sessions", "sessions", "users per month"}
)

func init() {
	registerApplications()
	registerDatabases()
	registerSAP()
	registerMicroservices()
	registerMobileApps()
}

func registerApplications() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyApplications,
			Sheet: InventorySheet,
			Label: "Applications",
			Order: 1,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Type: core.FieldText, Required: true, Normalizer: collapseSpaces,
				Synonyms: []string{"aplicacion", "nombre de la aplicacion", "nombre aplicacion", "aplicaciones", "application", "application name"}},
			{Name: "server", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"servidor", "servidor de aplicaciones", "app server", "server"}},
			{Name: "type", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"tipo", "lenguaje", "tecnologia", "type", "language"}},
			{Name: "nodes", Type: core.FieldInt, Required: true, Synonyms: nodesSynonyms},
			{Name: "cores_per_node", Type: core.FieldInt, Required: true, Synonyms: coresSynonyms},
			{Name: "is_web_app", Type: core.FieldBool, AllowEmpty: true,
				Synonyms: []string{"es web", "es aplicacion web", "aplicacion web", "web", "is web app", "web app"}},
			{Name: "has_secure_app", Type: core.FieldBool, AllowEmpty: true,
				Synonyms: []string{"secure application", "secure app", "cisco secure application"}},
			{Name: "sessions", Type: core.FieldCount, AllowEmpty: true, Synonyms: sessionsSynonyms},
			{Name: "notes", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"observaciones", "notas", "comentarios", "notes"}},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			if isPlaceholder(r.Raw("name")) {
				return nil, false
			}
			app := schema.Application{
				Name:            r.Name("name"),
				Server:          r.Text("server"),
				Language:        r.Text("type"),
				Nodes:           r.Int("nodes"),
				CoresPerNode:    r.Int("cores_per_node"),
				IsWebApp:        r.Bool("is_web_app"),
				HasSecureApp:    r.Bool("has_secure_app"),
				MonthlySessions: r.Int("sessions"),
				Notes:           r.Text("notes"),
			}
			app.Warnings = r.Warnings()
			return app, true
		},
		MinHeaderFields: 3,
	})
}

func registerDatabases() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyDatabases,
			Sheet: InventorySheet,
			Label: "Databases",
			Order: 2,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "engine", Type: core.FieldText, Required: true, Normalizer: collapseSpaces,
				Synonyms: []string{"base de datos", "bases de datos", "motor de base de datos", "motor", "bd", "db", "database"}},
			{Name: "version", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"version", "version de base de datos", "version bd"}},
			{Name: "cores_per_node", Type: core.FieldInt, Required: true, Synonyms: coresSynonyms},
			{Name: "nodes", Type: core.FieldInt, Required: true, Synonyms: nodesSynonyms},
			{Name: "os", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"sistema operativo", "so", "os", "operating system"}},
			{Name: "related_app", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"aplicacion relacionada", "app relacionada", "aplicacion", "related application"}},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			if isPlaceholder(r.Raw("engine")) {
				return nil, false
			}
			db := schema.Database{
				Engine:       r.Name("engine"),
				Version:      r.Text("version"),
				CoresPerNode: r.Int("cores_per_node"),
				Nodes:        r.Int("nodes"),
				OS:           r.Text("os"),
				RelatedApp:   r.Text("related_app"),
			}
			db.Warnings = r.Warnings()
			return db, true
		},
		MinHeaderFields: 3,
	})
}

func registerSAP() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeySAP,
			Sheet: InventorySheet,
			Label: "SAP",
			Order: 3,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Type: core.FieldText, Required: true, Normalizer: collapseSpaces,
				Synonyms: []string{"aplicacion sap", "sistema sap", "nombre sap", "sap", "sap application", "sap system", "sid"}},
			{Name: "server", Type: core.FieldText, AllowEmpty: true, Synonyms: []string{"servidor", "server"}},
			{Name: "type", Type: core.FieldText, AllowEmpty: true, Synonyms: []string{"tipo", "modulo", "type"}},
			{Name: "nodes", Type: core.FieldInt, Default: "1", Synonyms: nodesSynonyms},
			{Name: "cores", Type: core.FieldText, Required: true,
				Synonyms: []string{"cores vcpu", "descripcion de cores", "cores por componente", "cores", "vcpu", "cpu", "cpus", "nucleos"}},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			if isPlaceholder(r.Raw("name")) {
				return nil, false
			}
			sap := schema.NewSAPApplication(
				r.Name("name"),
				r.Text("server"),
				r.Text("type"),
				r.Int("nodes"),
				r.Text("cores"),
			)
			r.Attach(sap.Warnings)
			sap.Warnings = r.Warnings()
			return sap, true
		},
	})
}

func registerMicroservices() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyMicroservices,
			Sheet: InventorySheet,
			Label: "Microservices",
			Order: 4,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Type: core.FieldText, Required: true, Normalizer: collapseSpaces,
				Synonyms: []string{"microservicio", "microservicios", "nombre del microservicio", "microservice", "microservices", "servicio"}},
			{Name: "platform", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"plataforma", "orquestador", "servidor", "platform", "server"}},
			{Name: "type", Type: core.FieldText, AllowEmpty: true, Synonyms: []string{"tipo", "lenguaje", "type"}},
			{Name: "containers", Type: core.FieldInt, AllowEmpty: true,
				Synonyms: []string{"contenedores", "numero de contenedores", "containers", "pods"}},
			{Name: "sessions", Type: core.FieldCount, AllowEmpty: true, Synonyms: sessionsSynonyms},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			if isPlaceholder(r.Raw("name")) {
				return nil, false
			}
			ms := schema.Microservice{
				Name:            r.Name("name"),
				Platform:        r.Text("platform"),
				Type:            r.Text("type"),
				Containers:      r.Int("containers"),
				MonthlySessions: r.Int("sessions"),
			}
			ms.Warnings = r.Warnings()
			return ms, true
		},
	})
}

func registerMobileApps() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyMobileApps,
			Sheet: InventorySheet,
			Label: "Mobile Apps",
			Order: 5,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Type: core.FieldText, Required: true, Normalizer: collapseSpaces,
				Synonyms: []string{"app movil", "aplicacion movil", "aplicaciones moviles", "apps moviles", "nombre de la app", "mobile app", "mobile application"}},
			{Name: "type", Type: core.FieldText, AllowEmpty: true, Synonyms: []string{"tipo", "type"}},
			{Name: "platform", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"plataforma", "sistema operativo", "platform", "os"}},
			{Name: "ide", Type: core.FieldText, AllowEmpty: true,
				Synonyms: []string{"ide", "entorno de desarrollo", "framework"}},
			{Name: "active_agents", Type: core.FieldCount, AllowEmpty: true,
				Synonyms: []string{"active agents", "active agents por mes", "agentes activos", "usuarios activos", "active agents per month"}},
		},
		BuildRecord: func(r *core.RowReader) (any, bool) {
			name := r.Raw("name")
			if isPlaceholder(name) || core.NormalizeHeader(name) == "app" {
				return nil, false
			}
			m := schema.MobileApp{
				Name:                r.Name("name"),
				Type:                r.Text("type"),
				Platform:            r.Text("platform"),
				IDE:                 r.Text("ide"),
				MonthlyActiveAgents: r.Int("active_agents"),
			}
			m.Warnings = r.Warnings()
			return m, true
		},
	})
}
