// Package schema defines the inventory records that drive license sizing.
//
// Records are plain values. They are produced either by the spreadsheet
// extraction in core/tables or directly by a caller (JSON API, CLI), and are
// never mutated after construction.
package schema

// Application is a traditional application from the applications table.
type Application struct {
	Name            string    `json:"name"`
	Server          string    `json:"server"`
	Language        string    `json:"type"`
	Nodes           int       `json:"nodes"`
	CoresPerNode    int       `json:"cores_per_node"`
	IsWebApp        bool      `json:"is_web_app"`
	HasSecureApp    bool      `json:"has_secure_app"`
	MonthlySessions int       `json:"sessions_users_per_month"` // 0 when absent
	Notes           string    `json:"notes,omitempty"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// TotalCores returns nodes × cores per node.
func (a Application) TotalCores() int {
	return a.Nodes * a.CoresPerNode
}

// Database is a database engine from the databases table.
type Database struct {
	Engine       string    `json:"name"`
	Version      string    `json:"version"`
	CoresPerNode int       `json:"cores_per_node"`
	Nodes        int       `json:"nodes"`
	OS           string    `json:"os"`
	RelatedApp   string    `json:"related_app"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// TotalCores returns nodes × cores per node.
func (d Database) TotalCores() int {
	return d.Nodes * d.CoresPerNode
}

// Microservice is a containerized workload. It is billed for RUM only; its
// cores are carried by the hosting nodes already listed elsewhere.
type Microservice struct {
	Name            string    `json:"name"`
	Platform        string    `json:"server"`
	Type            string    `json:"type"`
	Containers      int       `json:"containers"`
	MonthlySessions int       `json:"sessions_users_per_month"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// ServerVisibilityOnly is a host monitored for Server Visibility without APM
// or database agents.
type ServerVisibilityOnly struct {
	Name         string    `json:"name"`
	Nodes        int       `json:"nodes"`
	CoresPerNode int       `json:"cores_per_node"`
	OS           string    `json:"os"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// TotalCores returns nodes × cores per node.
func (s ServerVisibilityOnly) TotalCores() int {
	return s.Nodes * s.CoresPerNode
}

// MobileApp is a mobile application sized by monthly Active Agents.
type MobileApp struct {
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Platform            string    `json:"platform"`
	IDE                 string    `json:"ide"`
	MonthlyActiveAgents int       `json:"active_agents_per_month"`
	Warnings            []Warning `json:"warnings,omitempty"`
}

// Inventory bundles every record kind for a single calculation.
// Any collection may be empty.
type Inventory struct {
	Applications         []Application          `json:"applications"`
	Databases            []Database             `json:"databases"`
	SAPApplications      []SAPApplication       `json:"sap_apps"`
	Microservices        []Microservice         `json:"microservices"`
	ServerVisibilityOnly []ServerVisibilityOnly `json:"server_visibility_only"`
	MobileApps           []MobileApp            `json:"mobile_apps"`
}

// Add appends rec to the matching collection.
// Returns false if rec is not an inventory record.
func (inv *Inventory) Add(rec any) bool {
	switch r := rec.(type) {
	case Application:
		inv.Applications = append(inv.Applications, r)
	case Database:
		inv.Databases = append(inv.Databases, r)
	case SAPApplication:
		inv.SAPApplications = append(inv.SAPApplications, r)
	case Microservice:
		inv.Microservices = append(inv.Microservices, r)
	case ServerVisibilityOnly:
		inv.ServerVisibilityOnly = append(inv.ServerVisibilityOnly, r)
	case MobileApp:
		inv.MobileApps = append(inv.MobileApps, r)
	default:
		return false
	}
	return true
}

// Len returns the total number of records across all collections.
func (inv Inventory) Len() int {
	return len(inv.Applications) + len(inv.Databases) + len(inv.SAPApplications) +
		len(inv.Microservices) + len(inv.ServerVisibilityOnly) + len(inv.MobileApps)
}

// Warnings collects the warnings attached to every record, in collection order.
func (inv Inventory) Warnings() []Warning {
	var out []Warning
	for _, a := range inv.Applications {
		out = append(out, a.Warnings...)
	}
	for _, d := range inv.Databases {
		out = append(out, d.Warnings...)
	}
	for _, s := range inv.SAPApplications {
		out = append(out, s.Warnings...)
	}
	for _, m := range inv.Microservices {
		out = append(out, m.Warnings...)
	}
	for _, s := range inv.ServerVisibilityOnly {
		out = append(out, s.Warnings...)
	}
	for _, m := range inv.MobileApps {
		out = append(out, m.Warnings...)
	}
	return out
}
