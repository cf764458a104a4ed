package schema

// MonitoringTest is one ThousandEyes test definition.
//
// TestType and AgentType hold the text as entered ("HTTP Server", "cloud");
// the thousandeyes package resolves them against its catalog. For BGP tests
// Agents is the number of BGP monitors.
type MonitoringTest struct {
	TestType           string    `json:"test_type"`
	IntervalMin        int       `json:"interval_minutes"`
	Agents             int       `json:"num_agents"`
	AgentType          string    `json:"agent_type"`
	TimeoutSeconds     int       `json:"timeout_seconds,omitempty"`
	RTPDurationSeconds int       `json:"rtp_duration_seconds,omitempty"` // used when TimeoutSeconds is 0
	DNSServers         int       `json:"dns_servers,omitempty"`
	Warnings           []Warning `json:"warnings,omitempty"`
}
