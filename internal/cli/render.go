package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/schema"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
)

var (
	primary = lipgloss.Color("#7C3AED")
	muted   = lipgloss.Color("#6B7280")
	warning = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(muted)

	warningStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)
)

func heading(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, subtitleStyle.Render(subtitle))
	}
}

// newTable returns a rounded table whose columns from firstNumeric on are
// right aligned.
func newTable(header table.Row, firstNumeric int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)

	var configs []table.ColumnConfig
	for i := firstNumeric; i > 0 && i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderParsed(w io.Writer, p *sizing.Parsed) {
	heading(w, "Inventory", p.FileName)
	inv := p.Inventory

	if len(inv.Applications) > 0 {
		tw := newTable(table.Row{"Application", "Server", "Type", "Web", "Secure App", "Nodes", "Cores/node", "Sessions"}, 6)
		for _, a := range inv.Applications {
			tw.AppendRow(table.Row{a.Name, a.Server, a.Language, yesNo(a.IsWebApp), yesNo(a.HasSecureApp), a.Nodes, a.CoresPerNode, a.MonthlySessions})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(inv.Databases) > 0 {
		tw := newTable(table.Row{"Database", "Version", "OS", "Nodes", "Cores/node"}, 4)
		for _, d := range inv.Databases {
			tw.AppendRow(table.Row{d.Engine, d.Version, d.OS, d.Nodes, d.CoresPerNode})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(inv.SAPApplications) > 0 {
		tw := newTable(table.Row{"SAP", "Server", "Type", "Cores", "Nodes", "Component cores"}, 5)
		for _, s := range inv.SAPApplications {
			tw.AppendRow(table.Row{s.Name, s.Server, s.Type, s.CoreDescription, s.Nodes, s.ComponentCores})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(inv.Microservices) > 0 {
		tw := newTable(table.Row{"Microservice", "Platform", "Type", "Containers", "Sessions"}, 4)
		for _, m := range inv.Microservices {
			tw.AppendRow(table.Row{m.Name, m.Platform, m.Type, m.Containers, m.MonthlySessions})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(inv.ServerVisibilityOnly) > 0 {
		tw := newTable(table.Row{"Server", "OS", "Nodes", "Cores/node"}, 3)
		for _, s := range inv.ServerVisibilityOnly {
			tw.AppendRow(table.Row{s.Name, s.OS, s.Nodes, s.CoresPerNode})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(inv.MobileApps) > 0 {
		tw := newTable(table.Row{"Mobile app", "Type", "Platform", "IDE", "Active agents"}, 5)
		for _, m := range inv.MobileApps {
			tw.AppendRow(table.Row{m.Name, m.Type, m.Platform, m.IDE, m.MonthlyActiveAgents})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if len(p.Tests) > 0 {
		tw := newTable(table.Row{"Test", "Agent type", "Interval (min)", "Agents", "Timeout (s)", "DNS servers"}, 3)
		for _, t := range p.Tests {
			tw.AppendRow(table.Row{t.TestType, t.AgentType, t.IntervalMin, t.Agents, t.TimeoutSeconds, t.DNSServers})
		}
		fmt.Fprintln(w, tw.Render())
	}
	if inv.Len() == 0 && len(p.Tests) == 0 {
		fmt.Fprintln(w, subtitleStyle.Render("No records found."))
	}

	renderWarnings(w, p.Warnings)
}

func renderLicense(w io.Writer, fileName string, res license.Result) {
	heading(w, "AppDynamics licenses", fileName)

	tw := newTable(table.Row{"Metric", "Value"}, 2)
	tw.AppendRows([]table.Row{
		{"APM cores", res.APMCores},
		{"  of which SAP", res.SAPCores},
		{"Database cores", res.DatabaseCores},
		{"Total infrastructure cores", res.TotalInfrastructureCores},
		{"Secure Application cores", res.SecureAppCores},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Server Visibility units", res.ServerVisibilityUnits},
		{"Server Visibility only cores", res.ServerVisibilityOnlyCores},
		{"Microservice containers", res.MicroserviceContainers},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"RUM Browser pageviews (monthly)", res.RUMBrowserPageviewsMonthly},
		{"RUM Browser pageviews (annual)", res.RUMBrowserPageviewsAnnual},
		{"RUM Browser units", res.RUMBrowserUnits},
		{"RUM Mobile active agents", res.RUMMobileActiveAgents},
		{"RUM Mobile units", res.RUMMobileUnits},
		{"RUM tokens", res.RUMTokens},
	})
	fmt.Fprintln(w, tw.Render())
}

func renderThousandEyes(w io.Writer, fileName string, res thousandeyes.Result) {
	heading(w, "ThousandEyes units", fileName)

	tw := newTable(table.Row{"Test", "Agent type", "Interval (min)", "Agents", "Timeout (s)", "Executions/month", "Units"}, 3)
	for _, t := range res.Tests {
		timeout := "-"
		if t.TimeoutSeconds > 0 {
			timeout = strconv.Itoa(t.TimeoutSeconds)
		}
		tw.AppendRow(table.Row{t.Name, t.AgentType, t.IntervalMinutes, t.Agents, timeout, t.ExecutionsPerMonth, t.Units.StringFixed(2)})
	}
	tw.AppendFooter(table.Row{"Total", "", "", "", "", "", res.TotalUnits.StringFixed(2)})
	fmt.Fprintln(w, tw.Render())

	renderWarnings(w, res.Warnings)
}

func renderWarnings(w io.Writer, warnings []schema.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d warning(s)", len(warnings))))

	tw := newTable(table.Row{"Code", "Table", "Row", "Field", "Message"}, 0)
	for _, warn := range warnings {
		row := ""
		if warn.Row > 0 {
			row = strconv.Itoa(warn.Row)
		}
		tw.AppendRow(table.Row{warn.Code, warn.Table, row, warn.Field, warn.Message})
	}
	fmt.Fprintln(w, tw.Render())
}
