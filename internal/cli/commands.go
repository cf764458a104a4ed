package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/appdsizer/internal/sizing"
)

func newExtractCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the records extracted from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parse(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			renderParsed(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newCalculateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate FILE",
		Short: "Compute the AppDynamics licenses of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := size(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			renderLicense(cmd.OutOrStdout(), rep.FileName, rep.License)
			renderWarnings(cmd.OutOrStdout(), rep.Warnings)
			return nil
		},
	}
}

func newTECommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "te FILE",
		Short: "Compute the ThousandEyes units of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := size(cmd, opts, args[0])
			if err != nil {
				return err
			}
			res := rep.ThousandEyes
			res.Warnings = rep.Warnings
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderThousandEyes(cmd.OutOrStdout(), rep.FileName, res)
			return nil
		},
	}
}

func parse(cmd *cobra.Command, opts *options, path string) (*sizing.Parsed, error) {
	svc, err := opts.service()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return svc.ParseWorkbook(cmd.Context(), f, path)
}

func size(cmd *cobra.Command, opts *options, path string) (*sizing.Report, error) {
	svc, err := opts.service()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return svc.SizeWorkbook(cmd.Context(), f, path)
}
