package thousandeyes

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/appdsizer/internal/core"
)

// Pricing describes how a test type's per-execution cost is derived.
type Pricing int

const (
	// PricingFlat charges the base cost per execution.
	PricingFlat Pricing = iota
	// PricingPerSecond charges the base cost per second of timeout.
	PricingPerSecond
	// PricingPerServer charges the base cost per DNS server tested.
	PricingPerServer
	// PricingMonitors charges the base cost per BGP monitor, with no agent multiplier.
	PricingMonitors
)

// Type keys.
const (
	TypeNetwork       = "network"
	TypeAgentToAgent  = "agent_to_agent"
	TypeAgentToServer = "agent_to_server"
	TypeDNSServer     = "dns_server"
	TypeDNSTrace      = "dns_trace"
	TypeDNSSEC        = "dnssec"
	TypeBGP           = "bgp"
	TypeHTTPServer    = "http_server"
	TypeFTPServer     = "ftp_server"
	TypePageLoad      = "page_load"
	TypeTransaction   = "transaction"
	TypeSIPServer     = "sip_server"
	TypeRTPStream     = "rtp_stream"
)

// TestType is one entry of the cost table.
type TestType struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Scope   string          `json:"scope"`
	Pricing Pricing         `json:"-"`
	Cost    decimal.Decimal `json:"base_milli_units"` // enterprise milli-units per execution (per second for PricingPerSecond)

	UsesTimeout bool `json:"uses_timeout"`
}

var (
	networkCost   = decimal.RequireFromString("2.5")
	perSecondCost = decimal.RequireFromString("0.5")
	bgpCost       = decimal.NewFromInt(8)
)

var catalog = map[string]TestType{
	TypeNetwork: {
		Key: TypeNetwork, Name: "Network (Agent-to-Server / Agent-to-Agent)", Pricing: PricingFlat, Cost: networkCost,
		Scope: "Monitors network connectivity between agents and servers: packet loss, latency and jitter.",
	},
	TypeAgentToAgent: {
		Key: TypeAgentToAgent, Name: "Network Agent-to-Agent", Pricing: PricingFlat, Cost: networkCost,
		Scope: "Tests between two ThousandEyes agents with one-way metrics, optional throughput and path visualization.",
	},
	TypeAgentToServer: {
		Key: TypeAgentToServer, Name: "Network Agent-to-Server", Pricing: PricingFlat, Cost: networkCost,
		Scope: "Connectivity from an agent to a server or endpoint, including BGP monitoring of the target prefix.",
	},
	TypeDNSServer: {
		Key: TypeDNSServer, Name: "DNS Server", Pricing: PricingPerServer, Cost: networkCost,
		Scope: "Queries DNS resolution against one or more DNS servers. Cost is multiplied by the number of servers tested.",
	},
	TypeDNSTrace: {
		Key: TypeDNSTrace, Name: "DNS Trace", Pricing: PricingFlat, Cost: networkCost,
		Scope: "Traces the DNS delegation chain from the root to the authoritative server.",
	},
	TypeDNSSEC: {
		Key: TypeDNSSEC, Name: "DNSSEC", Pricing: PricingFlat, Cost: networkCost,
		Scope: "Validates DNSSEC signatures along the resolution chain.",
	},
	TypeBGP: {
		Key: TypeBGP, Name: "BGP", Pricing: PricingMonitors, Cost: bgpCost,
		Scope: "Monitors BGP prefix propagation (hijacks, route flaps, leaks) using shared BGP monitors, not agents.",
	},
	TypeHTTPServer: {
		Key: TypeHTTPServer, Name: "Web - HTTP Server", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Checks availability and response time of HTTP/HTTPS servers.",
	},
	TypeFTPServer: {
		Key: TypeFTPServer, Name: "Web - FTP Server", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Checks availability of FTP servers.",
	},
	TypePageLoad: {
		Key: TypePageLoad, Name: "Web - Page Load", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Measures full page load time in a real browser.",
	},
	TypeTransaction: {
		Key: TypeTransaction, Name: "Web - Transaction", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Replays scripted multi-step flows such as login or checkout.",
	},
	TypeSIPServer: {
		Key: TypeSIPServer, Name: "Voice - SIP Server", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Checks availability of SIP servers for VoIP.",
	},
	TypeRTPStream: {
		Key: TypeRTPStream, Name: "Voice - RTP Stream", Pricing: PricingPerSecond, Cost: perSecondCost, UsesTimeout: true,
		Scope: "Emulates a VoIP call between agents: loss, latency and MOS. The stream duration is used as the timeout.",
	},
}

// aliases maps spreadsheet and UI spellings, in NormalizeHeader form, to type keys.
// Catalog keys and display names are added by init.
var aliases = map[string]string{
	"red":             TypeNetwork,
	"network":         TypeNetwork,
	"agent to agent":  TypeAgentToAgent,
	"agent to server": TypeAgentToServer,
	"dns":             TypeDNSServer,
	"http":            TypeHTTPServer,
	"https":           TypeHTTPServer,
	"ftp":             TypeFTPServer,
	"web":             TypePageLoad,
	"sip":             TypeSIPServer,
	"rtp":             TypeRTPStream,
	"voz":             TypeRTPStream,
}

func init() {
	for key, tt := range catalog {
		aliases[core.NormalizeHeader(key)] = key
		aliases[core.NormalizeHeader(tt.Name)] = key
	}
}

// agentAliases maps agent type spellings to "cloud" or "enterprise".
var agentAliases = map[string]string{
	"cloud":            AgentCloud,
	"clou":             AgentCloud,
	"cloud agent":      AgentCloud,
	"nube":             AgentCloud,
	"enterprise":       AgentEnterprise,
	"enterpris":        AgentEnterprise,
	"enterprise agent": AgentEnterprise,
	"empresarial":      AgentEnterprise,
	"on prem":          AgentEnterprise,
}

// Agent types.
const (
	AgentCloud      = "cloud"
	AgentEnterprise = "enterprise"
)

// Lookup resolves a test type as entered ("HTTP Server", "red", "page_load").
func Lookup(name string) (TestType, bool) {
	key, ok := aliases[core.NormalizeHeader(name)]
	if !ok {
		return TestType{}, false
	}
	return catalog[key], true
}

// Catalog returns every test type sorted by display name.
func Catalog() []TestType {
	out := make([]TestType, 0, len(catalog))
	for _, tt := range catalog {
		out = append(out, tt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Help holds the explanations shown next to the test form.
type Help struct {
	Interval  string `json:"interval"`
	Agents    string `json:"agents"`
	AgentType string `json:"agent_type"`
	Timeout   string `json:"timeout"`
}

// HelpTexts returns the form explanations.
func HelpTexts() Help {
	return Help{
		Interval: "The interval is how often the test runs, in minutes. Shorter intervals (1-2 min) detect " +
			"failures sooner but consume more units. A 5 minute interval runs 12 rounds per hour; 1 minute runs 60.",
		Agents: "Number of agents running the same test. Each agent adds a vantage point, and the cost is " +
			"multiplied by the number of agents. For BGP tests this is the number of BGP monitors.",
		AgentType: "Cloud agents are managed by ThousandEyes on the Internet and cost twice as much as " +
			"Enterprise agents, which run in your own infrastructure.",
		Timeout: "Maximum seconds for the test to succeed. Applies to Web and Voice tests only (HTTP, FTP, " +
			"Page Load, Transaction, SIP, RTP) and is clamped to 5-180 s. A longer timeout multiplies the per-execution cost.",
	}
}
