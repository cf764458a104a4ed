// Package license converts an inventory into AppDynamics license units.
//
// The engine is a pure function of its Config and the inventory: no I/O,
// no shared mutable state, safe for concurrent use.
package license

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// Engine computes license results with a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an engine that uses it.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the constants the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Calculate sizes inv. Empty collections contribute zero; Calculate never fails.
// Negative counts from caller-built records are sized as 0 and reported as
// CELL003 warnings after the warnings the records already carry.
//
// Microservices add no cores and no Server Visibility units: they run on
// nodes already listed as applications or servers. Every microservice with
// sessions counts toward RUM Browser.
func (e *Engine) Calculate(inv schema.Inventory) Result {
	var r Result

	for _, a := range inv.Applications {
		nodes := r.count("Applications", a.Name, "nodes", a.Nodes)
		cores := nodes * r.count("Applications", a.Name, "cores_per_node", a.CoresPerNode)
		r.APMCores += cores
		r.ServerVisibilityUnits += nodes
		if a.HasSecureApp {
			r.SecureAppCores += cores
		}

		pv := 0
		if a.IsWebApp {
			pv = e.monthlyPageviews(r.count("Applications", a.Name, "sessions", a.MonthlySessions))
		}
		r.RUMBrowserPageviewsMonthly += pv

		r.Details.Applications = append(r.Details.Applications, EntityDetail{
			Name: a.Name, Nodes: nodes, Cores: cores, SecureApp: a.HasSecureApp, Pageviews: pv,
		})
	}

	for _, s := range inv.SAPApplications {
		nodes := r.count("SAP", s.Name, "nodes", s.Nodes)
		cores := s.ComponentCores * nodes
		r.SAPCores += cores
		r.APMCores += cores
		r.Details.SAP = append(r.Details.SAP, EntityDetail{Name: s.Name, Nodes: nodes, Cores: cores})
	}

	for _, d := range inv.Databases {
		nodes := r.count("Databases", d.Engine, "nodes", d.Nodes)
		cores := nodes * r.count("Databases", d.Engine, "cores_per_node", d.CoresPerNode)
		r.DatabaseCores += cores
		r.ServerVisibilityUnits += nodes
		r.Details.Databases = append(r.Details.Databases, EntityDetail{Name: d.Engine, Nodes: nodes, Cores: cores})
	}

	for _, s := range inv.ServerVisibilityOnly {
		nodes := r.count("Server Visibility", s.Name, "nodes", s.Nodes)
		cores := nodes * r.count("Server Visibility", s.Name, "cores_per_node", s.CoresPerNode)
		r.ServerVisibilityUnits += nodes
		r.ServerVisibilityOnlyCores += cores
		r.Details.ServerVisibilityOnly = append(r.Details.ServerVisibilityOnly, EntityDetail{Name: s.Name, Nodes: nodes, Cores: cores})
	}

	for _, m := range inv.Microservices {
		containers := r.count("Microservices", m.Name, "containers", m.Containers)
		pv := e.monthlyPageviews(r.count("Microservices", m.Name, "sessions", m.MonthlySessions))
		r.RUMBrowserPageviewsMonthly += pv
		r.MicroserviceContainers += containers
		r.Details.Microservices = append(r.Details.Microservices, EntityDetail{Name: m.Name, Containers: containers, Pageviews: pv})
	}

	for _, m := range inv.MobileApps {
		agents := r.count("Mobile Apps", m.Name, "active_agents", m.MonthlyActiveAgents)
		r.RUMMobileActiveAgents += agents
		r.Details.MobileApps = append(r.Details.MobileApps, EntityDetail{Name: m.Name, ActiveAgents: agents})
	}

	r.TotalInfrastructureCores = r.APMCores + r.DatabaseCores

	r.RUMBrowserPageviewsAnnual = r.RUMBrowserPageviewsMonthly * 12
	r.RUMBrowserTokensAnnual = r.RUMBrowserPageviewsAnnual * e.cfg.TokensPerPageview
	r.RUMBrowserUnits = ceilDiv(r.RUMBrowserPageviewsAnnual, e.cfg.BrowserPageviewsPerUnit)

	r.RUMMobileUnits = ceilDiv(r.RUMMobileActiveAgents, e.cfg.ActiveAgentsPerMobileUnit)
	r.RUMMobileTokensMonthly = r.RUMMobileActiveAgents * e.cfg.TokensPerActiveAgentMonth

	r.RUMTokens = r.RUMBrowserTokensAnnual + r.RUMMobileTokensMonthly

	r.Warnings = append(inv.Warnings(), r.Warnings...)
	return r
}

// count returns v, or 0 with a CELL003 warning when a caller passed a
// negative count.
func (r *Result) count(table, name, field string, v int) int {
	if v >= 0 {
		return v
	}
	r.Warnings = append(r.Warnings, schema.Warning{
		Code:    schema.WarnNegativeValue,
		Table:   table,
		Field:   field,
		Value:   strconv.Itoa(v),
		Message: fmt.Sprintf("%s: negative %s counted as 0", name, field),
	})
	return 0
}

func (e *Engine) monthlyPageviews(sessions int) int {
	if sessions <= 0 {
		return 0
	}
	return sessions * e.cfg.PageviewsPerUserPerMonth
}

// ceilDiv divides rounding up; partial consumption still takes a whole unit.
func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
