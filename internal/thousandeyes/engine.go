// Package thousandeyes meters ThousandEyes monitoring tests in consumption units.
//
// A test's monthly consumption is its per-execution milli-unit cost times the
// executions in a month times its agents, divided by 1000. Units are decimals
// and are never rounded.
package thousandeyes

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/schema"
)

// Bounds applied to test parameters.
const (
	MinInterval    = 1
	MaxInterval    = 60
	MinTimeout     = 5
	MaxTimeout     = 180
	DefaultTimeout = MinTimeout
)

var thousand = decimal.NewFromInt(1000)

// Result is the metering of a set of tests.
type Result struct {
	TotalUnits      decimal.Decimal  `json:"total_consumption_units"`
	MinutesPerMonth int              `json:"minutes_per_month"`
	Tests           []TestResult     `json:"tests"`
	Warnings        []schema.Warning `json:"warnings,omitempty"`
}

// TestResult is one test's share of the result, with the parameters as applied.
type TestResult struct {
	TestType     string `json:"test_type"` // as entered
	ResolvedType string `json:"resolved_type"`
	Name         string `json:"name"`
	Scope        string `json:"scope"`
	AgentType    string `json:"agent_type"`

	IntervalMinutes int `json:"interval_minutes"`
	Agents          int `json:"num_agents"`
	TimeoutSeconds  int `json:"timeout_seconds,omitempty"`
	DNSServers      int `json:"dns_servers,omitempty"`

	ExecutionsPerMonth     int             `json:"executions_per_month"`
	MilliUnitsPerExecution decimal.Decimal `json:"milli_units_per_execution"`
	Units                  decimal.Decimal `json:"units"`

	Warnings []schema.Warning `json:"warnings,omitempty"`
}

// Engine meters tests with a fixed Config. It is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and the cost table and returns an engine.
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

// Calculate meters every test. Unknown types and out-of-range parameters are
// resolved to defaults with a warning; Calculate never fails.
func (e *Engine) Calculate(tests []schema.MonitoringTest) Result {
	r := Result{
		TotalUnits:      decimal.Zero,
		MinutesPerMonth: e.cfg.MinutesPerMonth,
		Tests:           make([]TestResult, 0, len(tests)),
	}

	for _, t := range tests {
		tr := e.meter(t)
		r.TotalUnits = r.TotalUnits.Add(tr.Units)
		r.Tests = append(r.Tests, tr)
		r.Warnings = append(r.Warnings, t.Warnings...)
		r.Warnings = append(r.Warnings, tr.Warnings...)
	}
	return r
}

func (e *Engine) meter(t schema.MonitoringTest) TestResult {
	tr := TestResult{TestType: t.TestType}

	tt, ok := Lookup(t.TestType)
	if !ok {
		tt = catalog[TypeNetwork]
		tr.warn(schema.WarnUnknownTestType, "test_type", t.TestType,
			fmt.Sprintf("unknown test type, priced as %s", tt.Name))
	}
	tr.ResolvedType = tt.Key
	tr.Name = tt.Name
	tr.Scope = tt.Scope

	tr.IntervalMinutes = t.IntervalMin
	if tr.IntervalMinutes < MinInterval || tr.IntervalMinutes > MaxInterval {
		tr.IntervalMinutes = clamp(t.IntervalMin, MinInterval, MaxInterval)
		tr.warn(schema.WarnIntervalClamped, "interval", strconv.Itoa(t.IntervalMin),
			fmt.Sprintf("interval must be %d-%d minutes, using %d", MinInterval, MaxInterval, tr.IntervalMinutes))
	}
	tr.ExecutionsPerMonth = e.cfg.MinutesPerMonth / tr.IntervalMinutes

	tr.Agents = max(t.Agents, 0)
	cost := tt.Cost

	switch tt.Pricing {
	case PricingMonitors:
		// BGP uses shared monitors; agent type does not apply.
		tr.Agents = max(t.Agents, 1)
	case PricingPerSecond:
		seconds := t.TimeoutSeconds
		if seconds == 0 {
			seconds = t.RTPDurationSeconds
		}
		tr.TimeoutSeconds = e.timeout(&tr, seconds)
		cost = cost.Mul(decimal.NewFromInt(int64(tr.TimeoutSeconds)))
	case PricingPerServer:
		tr.DNSServers = max(t.DNSServers, 1)
		cost = cost.Mul(decimal.NewFromInt(int64(tr.DNSServers)))
	}

	if tt.Pricing != PricingMonitors {
		tr.AgentType = e.agentType(&tr, t.AgentType)
		if tr.AgentType == AgentCloud {
			cost = cost.Mul(e.cfg.CloudMultiplier)
		} else {
			cost = cost.Mul(e.cfg.EnterpriseMultiplier)
		}
	}

	tr.MilliUnitsPerExecution = cost
	tr.Units = cost.
		Mul(decimal.NewFromInt(int64(tr.ExecutionsPerMonth))).
		Mul(decimal.NewFromInt(int64(tr.Agents))).
		Div(thousand)
	return tr
}

func (e *Engine) timeout(tr *TestResult, seconds int) int {
	if seconds == 0 {
		return DefaultTimeout
	}
	if seconds < MinTimeout || seconds > MaxTimeout {
		clamped := clamp(seconds, MinTimeout, MaxTimeout)
		tr.warn(schema.WarnTimeoutClamped, "timeout", strconv.Itoa(seconds),
			fmt.Sprintf("timeout must be %d-%d seconds, using %d", MinTimeout, MaxTimeout, clamped))
		return clamped
	}
	return seconds
}

func (e *Engine) agentType(tr *TestResult, raw string) string {
	key := core.NormalizeHeader(raw)
	if key == "" {
		return AgentEnterprise
	}
	if agent, ok := agentAliases[key]; ok {
		return agent
	}
	tr.warn(schema.WarnUnknownAgent, "agent_type", raw, "unknown agent type, priced as enterprise")
	return AgentEnterprise
}

func (tr *TestResult) warn(code, field, value, msg string) {
	tr.Warnings = append(tr.Warnings, schema.Warning{
		Code:    code,
		Table:   "ThousandEyes Tests",
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
