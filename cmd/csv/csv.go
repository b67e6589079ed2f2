package csv

import (
	gocsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarif-view/sarif-view/internal/loader"
	"github.com/sarif-view/sarif-view/pkg/sarif"
	"github.com/sarif-view/sarif-view/pkg/shared/config"
	"github.com/sarif-view/sarif-view/pkg/shared/logger"
)

// csvHeader is the column order of the export.
var csvHeader = []string{"Tool", "Severity", "Code", "Location", "Line"}

// RunOptions holds flags for the csv command.
type RunOptions struct {
	Output   string
	Trim     bool
	Prefixes []string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleCSVUsage = `  # Export findings from a SARIF file to stdout
  sarifview csv /tmp/juice-shop/semgrep.sarif

  # Export a directory of scans to a file with trimmed locations
  sarifview csv --trim --output /tmp/findings.csv /tmp/scans`

	// CSVCmd represents the command to export simplified records as CSV.
	CSVCmd = &cobra.Command{
		Use:                   "csv [--output FILE] [--trim] [--strip-prefix PREFIX]... PATH...",
		Short:                 "Export findings as CSV records",
		Example:               exampleCSVUsage,
		Args:                  cobra.MinimumNArgs(1),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runCSV,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	CSVCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write CSV to this file instead of stdout")
	CSVCmd.Flags().BoolVar(&opts.Trim, "trim", false, "strip the automatically inferred common path prefix from locations")
	CSVCmd.Flags().StringSliceVar(&opts.Prefixes, "strip-prefix", nil, "path prefix to strip from locations (repeatable)")
}

func runCSV(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "csv")

	fileSet, err := loader.Load(args, lg)
	if err != nil {
		return err
	}
	if fileSet.IsEmpty() {
		return fmt.Errorf("no SARIF files found in %s", strings.Join(args, ", "))
	}
	if opts.Trim || len(opts.Prefixes) > 0 {
		if err := fileSet.InitPathPrefixStripping(opts.Trim, opts.Prefixes); err != nil {
			return err
		}
	}

	records, err := fileSet.GetRecords()
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", opts.Output, err)
		}
		defer file.Close()
		out = file
		lg.Info("writing CSV", "path", opts.Output, "records", len(records))
	}

	return writeRecords(out, records)
}

// writeRecords streams records in csvHeader column order.
func writeRecords(out io.Writer, records []*sarif.Record) error {
	writer := gocsv.NewWriter(out)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range records {
		row := []string{record.Tool, record.Severity, record.Code, record.Location, record.Line}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
