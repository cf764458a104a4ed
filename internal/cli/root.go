// Package cli implements the sizer command line tool.
//
// Every command reads one workbook (.xlsx, .xlsm or .csv) and prints either
// rendered tables or, with --json, the same documents the HTTP API returns.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/appdsizer/internal/config"
	"github.com/JonMunkholm/appdsizer/internal/core"
	"github.com/JonMunkholm/appdsizer/internal/logging"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
)

// options are the persistent flags shared by every command.
type options struct {
	jsonOutput       bool
	logLevel         string
	pageviewsPerUser int
}

// NewRootCommand builds the sizer command tree. Reports go to stdout, logs to
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sizer",
		Short: "Size AppDynamics and ThousandEyes licenses from an inventory workbook",
		Long: `sizer reads a sizing workbook and computes the AppDynamics licenses and
ThousandEyes units it needs.

The inventory is read from the "Anexo Aplicaciones" sheet and the tests from
"Thousandeyes V1". A CSV file is treated as the ThousandEyes sheet when its
name is "thousandeyes v1.csv" and as the inventory otherwise.

Environment Variables:
  SIZING_PAGEVIEWS_PER_USER  Monthly pageviews per user (default: 20)
  TE_MINUTES_PER_MONTH       Minutes in a billing month (default: 43200)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(stderr, opts.logLevel, "text")
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON instead of tables")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&opts.pageviewsPerUser, "pageviews-per-user", 0, "Monthly pageviews per user (overrides SIZING_PAGEVIEWS_PER_USER)")

	root.AddCommand(
		newExtractCommand(opts),
		newCalculateCommand(opts),
		newTECommand(opts),
	)
	return root
}

// Execute runs the command tree against os.Args and prints a failure to
// stderr. It returns the process exit code.
func Execute(ctx context.Context, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintf(stderr, "Error: %s\n  %v\n", core.FormatUserError(err), err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// service builds the sizing service from the environment and the flags.
func (o *options) service() (*sizing.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	svcOpts := cfg.SizingOptions()
	if o.pageviewsPerUser != 0 {
		svcOpts.License.PageviewsPerUserPerMonth = o.pageviewsPerUser
	}
	return sizing.NewService(svcOpts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
