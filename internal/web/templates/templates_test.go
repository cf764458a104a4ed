package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/schema"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestErrorAlert(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		action   string
		want     []string
		wantNone []string
	}{
		{
			name:    "with action",
			message: "File exceeds the maximum upload size",
			action:  "Split the workbook",
			want:    []string{"File exceeds the maximum upload size", "<p>Split the workbook</p>", "Code: FILE001"},
		},
		{
			name:     "escapes markup",
			message:  `<script>alert("x")</script>`,
			want:     []string{"&lt;script&gt;"},
			wantNone: []string{"<script>", "<p></p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, ErrorAlert(tt.message, tt.action, "FILE001"))
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q: %s", s, out)
				}
			}
			for _, s := range tt.wantNone {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q: %s", s, out)
				}
			}
		})
	}
}

func TestLicenseSummary(t *testing.T) {
	res := license.Result{
		APMCores:                 32,
		DatabaseCores:            24,
		TotalInfrastructureCores: 56,
		Warnings: []schema.Warning{
			{Code: schema.WarnMalformedNumber, Table: "Applications", Row: 3, Field: "nodes", Message: "bad"},
		},
	}

	out := renderString(t, LicenseSummary(res))
	for _, s := range []string{"APM cores", "56", "1 warning<", "<code>CELL001</code>"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q: %s", s, out)
		}
	}
}

func TestReport(t *testing.T) {
	te := thousandeyes.Result{
		TotalUnits: decimal.RequireFromString("259.2"),
		Tests: []thousandeyes.TestResult{
			{Name: "HTTP Server", AgentType: "cloud", IntervalMinutes: 5, Agents: 1, TimeoutSeconds: 30, Units: decimal.RequireFromString("259.2")},
		},
	}

	warnings := []schema.Warning{
		{Code: schema.WarnAmbiguousHeader, Table: "Applications", Row: 4, Message: "tie"},
	}
	out := renderString(t, Report("sizing <v2>.xlsx", license.Result{APMCores: 8}, te, warnings))
	for _, s := range []string{"sizing &lt;v2&gt;.xlsx", "AppDynamics licenses", "ThousandEyes units", "30 s", "259.20", "1 warning<", "<code>HDR001</code>"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q: %s", s, out)
		}
	}
	if n := strings.Count(out, `<details class="warnings">`); n != 1 {
		t.Errorf("warning lists = %d, want 1", n)
	}

	out = renderString(t, Report("inventory.csv", license.Result{}, thousandeyes.Result{}, nil))
	if strings.Contains(out, "ThousandEyes units") {
		t.Error("report without tests renders the ThousandEyes section")
	}
}

func TestIndex(t *testing.T) {
	out := renderString(t, Index())
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, `name="file"`) {
		t.Errorf("unexpected index page: %s", out)
	}
}
