package records

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarif-view/sarif-view/internal/loader"
	"github.com/sarif-view/sarif-view/pkg/shared/config"
	"github.com/sarif-view/sarif-view/pkg/shared/logger"
)

// RunOptions holds flags for the records command.
type RunOptions struct {
	Trim     bool
	Prefixes []string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleRecordsUsage = `  # List every finding in a SARIF file
  sarifview records /tmp/juice-shop/semgrep.sarif

  # List findings from a directory of scans with trimmed locations
  sarifview records --trim /tmp/scans`

	// RecordsCmd represents the command to list simplified SARIF records.
	RecordsCmd = &cobra.Command{
		Use:                   "records [--trim] [--strip-prefix PREFIX]... PATH...",
		Short:                 "List findings as flat records, one per line",
		Example:               exampleRecordsUsage,
		Args:                  cobra.MinimumNArgs(1),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runRecords,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	RecordsCmd.Flags().BoolVar(&opts.Trim, "trim", false, "strip the automatically inferred common path prefix from locations")
	RecordsCmd.Flags().StringSliceVar(&opts.Prefixes, "strip-prefix", nil, "path prefix to strip from locations (repeatable)")
}

func runRecords(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "records")

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

	out := cmd.OutOrStdout()
	for _, file := range fileSet.Files() {
		fmt.Fprintf(out, "%s:\n", file.GetFileName())
		for _, run := range file.GetRuns() {
			fmt.Fprintf(out, "  run %d (%s):\n", run.GetIndex(), run.GetToolName())
			records, err := run.GetRecords()
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Fprintf(out, "    %s:%s  [%s]  %s\n",
					record.Location, record.Line, record.Severity, record.Code)
			}
		}
	}
	return nil
}
