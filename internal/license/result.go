package license

import "github.com/JonMunkholm/appdsizer/internal/schema"

// Result is the license sizing of one inventory. It is a snapshot and is
// never modified after Calculate returns it.
type Result struct {
	// Infrastructure (1 CPU core = 1 license)
	APMCores                 int `json:"apm_cores"` // applications + SAP
	SAPCores                 int `json:"sap_cores"` // included in APMCores
	DatabaseCores            int `json:"database_cores"`
	TotalInfrastructureCores int `json:"total_infrastructure_cores"` // APM + database
	SecureAppCores           int `json:"secure_app_cores"`

	// Server Visibility (1 unit per OS instance)
	ServerVisibilityUnits     int `json:"server_visibility_units"`
	ServerVisibilityOnlyCores int `json:"server_visibility_only_cores"` // not part of the infrastructure total

	MicroserviceContainers int `json:"microservice_containers"` // informational

	// RUM Browser
	RUMBrowserPageviewsMonthly int `json:"rum_browser_pageviews_monthly"`
	RUMBrowserPageviewsAnnual  int `json:"rum_browser_pageviews_annual"`
	RUMBrowserUnits            int `json:"rum_browser_units"`
	RUMBrowserTokensAnnual     int `json:"rum_browser_tokens_annual"`

	// RUM Mobile
	RUMMobileActiveAgents  int `json:"rum_mobile_active_agents"`
	RUMMobileUnits         int `json:"rum_mobile_units"`
	RUMMobileTokensMonthly int `json:"rum_mobile_tokens_monthly"`

	// RUMTokens is the browser and mobile token components combined.
	RUMTokens int `json:"rum_tokens"`

	Details  Details          `json:"details"`
	Warnings []schema.Warning `json:"warnings,omitempty"`
}

// Details lists the contribution of every entity.
type Details struct {
	Applications         []EntityDetail `json:"applications,omitempty"`
	Databases            []EntityDetail `json:"databases,omitempty"`
	SAP                  []EntityDetail `json:"sap,omitempty"`
	Microservices        []EntityDetail `json:"microservices,omitempty"`
	ServerVisibilityOnly []EntityDetail `json:"server_visibility_only,omitempty"`
	MobileApps           []EntityDetail `json:"mobile_apps,omitempty"`
}

// EntityDetail is one entity's share of the result.
type EntityDetail struct {
	Name         string `json:"name"`
	Nodes        int    `json:"nodes,omitempty"`
	Cores        int    `json:"cores,omitempty"`
	SecureApp    bool   `json:"secure_app,omitempty"`
	Containers   int    `json:"containers,omitempty"`
	Pageviews    int    `json:"pageviews_monthly,omitempty"`
	ActiveAgents int    `json:"active_agents,omitempty"`
}
