// Package templates renders the HTML fragments returned to HTMX requests.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/schema"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
)

// writer accumulates the first write error so templates read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) row(label string, value any) {
	w.raw(`<tr><th class="text-left pr-4 font-medium">`)
	w.text(label)
	w.raw(`</th><td class="text-right tabular-nums">`)
	w.text(fmt.Sprint(value))
	w.raw(`</td></tr>`)
}

func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(w)
		return w.err
	})
}

// Index is the upload page.
func Index() templ.Component {
	return component(func(w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<title>AppDynamics Sizer</title>`)
		w.raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script></head><body class="p-6">`)
		w.raw(`<h1 class="text-xl font-semibold">AppDynamics and ThousandEyes sizing</h1>`)
		w.raw(`<form hx-post="/api/size" hx-encoding="multipart/form-data" hx-target="#result">`)
		w.raw(`<input type="file" name="file" accept=".xlsx,.xlsm,.csv" required>`)
		w.raw(`<button type="submit">Size workbook</button></form>`)
		w.raw(`<div id="result"></div></body></html>`)
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div class="alert alert-error" role="alert"><p class="font-medium">`)
		w.text(message)
		w.raw(`</p>`)
		if action != "" {
			w.raw(`<p>`)
			w.text(action)
			w.raw(`</p>`)
		}
		w.raw(`<p class="text-xs">Code: `)
		w.text(code)
		w.raw(`</p></div>`)
	})
}

// LicenseSummary renders the AppDynamics license figures.
func LicenseSummary(res license.Result) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="license"><h2>AppDynamics licenses</h2><table>`)
		w.row("APM cores", res.APMCores)
		w.row("SAP cores (in APM)", res.SAPCores)
		w.row("Database cores", res.DatabaseCores)
		w.row("Total infrastructure cores", res.TotalInfrastructureCores)
		w.row("Secure Application cores", res.SecureAppCores)
		w.row("Server Visibility units", res.ServerVisibilityUnits)
		w.row("Server Visibility only cores", res.ServerVisibilityOnlyCores)
		w.row("Microservice containers", res.MicroserviceContainers)
		w.row("RUM Browser pageviews (annual)", res.RUMBrowserPageviewsAnnual)
		w.row("RUM Browser units", res.RUMBrowserUnits)
		w.row("RUM Mobile active agents", res.RUMMobileActiveAgents)
		w.row("RUM Mobile units", res.RUMMobileUnits)
		w.row("RUM tokens", res.RUMTokens)
		w.raw(`</table></section>`)
		writeWarnings(w, res.Warnings)
	})
}

// ThousandEyesSummary renders the per-test consumption and the total.
func ThousandEyesSummary(res thousandeyes.Result) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="thousandeyes"><h2>ThousandEyes units</h2><table><thead><tr>`)
		for _, h := range []string{"Test", "Agent", "Interval", "Agents", "Timeout", "Units"} {
			w.raw(`<th>`)
			w.text(h)
			w.raw(`</th>`)
		}
		w.raw(`</tr></thead><tbody>`)
		for _, t := range res.Tests {
			w.raw(`<tr>`)
			cells := []string{
				t.Name,
				t.AgentType,
				fmt.Sprintf("%d min", t.IntervalMinutes),
				fmt.Sprint(t.Agents),
				timeoutCell(t.TimeoutSeconds),
				t.Units.StringFixed(2),
			}
			for _, c := range cells {
				w.raw(`<td>`)
				w.text(c)
				w.raw(`</td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody><tfoot><tr><th colspan="5">Total</th><td>`)
		w.text(res.TotalUnits.StringFixed(2))
		w.raw(`</td></tr></tfoot></table></section>`)
		writeWarnings(w, res.Warnings)
	})
}

// Report renders both summaries of a sized workbook followed by its warnings.
func Report(fileName string, lic license.Result, te thousandeyes.Result, warnings []schema.Warning) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<article class="report"><h1>`)
		w.text(fileName)
		w.raw(`</h1>`)
		if w.err == nil {
			w.err = LicenseSummary(lic).Render(ctx, out)
		}
		if w.err == nil && len(te.Tests) > 0 {
			w.err = ThousandEyesSummary(te).Render(ctx, out)
		}
		writeWarnings(w, warnings)
		w.raw(`</article>`)
		return w.err
	})
}

func timeoutCell(seconds int) string {
	if seconds == 0 {
		return "-"
	}
	return fmt.Sprintf("%d s", seconds)
}

func writeWarnings(w *writer, warnings []schema.Warning) {
	if len(warnings) == 0 {
		return
	}
	w.raw(`<details class="warnings"><summary>`)
	w.text(fmt.Sprintf("%d warning%s", len(warnings), plural(len(warnings))))
	w.raw(`</summary><ul>`)
	for _, warn := range warnings {
		w.raw(`<li><code>`)
		w.text(warn.Code)
		w.raw(`</code> `)
		w.text(strings.TrimPrefix(warn.String(), warn.Code+" "))
		w.raw(`</li>`)
	}
	w.raw(`</ul></details>`)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
