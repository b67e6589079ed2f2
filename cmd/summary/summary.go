package summary

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarif-view/sarif-view/internal/loader"
	"github.com/sarif-view/sarif-view/pkg/sarif"
	"github.com/sarif-view/sarif-view/pkg/shared/config"
	"github.com/sarif-view/sarif-view/pkg/shared/logger"
)

// RunOptions holds flags for the summary command.
type RunOptions struct {
	Trim     bool
	Prefixes []string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleSummaryUsage = `  # Summarise a single SARIF file
  sarifview summary /tmp/juice-shop/semgrep.sarif

  # Summarise every SARIF file under a directory, stripping the common path prefix
  sarifview summary --trim /tmp/scans

  # Strip explicit path prefixes instead
  sarifview summary --strip-prefix /home/user/project /tmp/scans`

	// SummaryCmd represents the command to summarise SARIF findings by severity and issue code.
	SummaryCmd = &cobra.Command{
		Use:                   "summary [--trim] [--strip-prefix PREFIX]... PATH...",
		Short:                 "Summarise SARIF findings by severity and issue code",
		Example:               exampleSummaryUsage,
		Args:                  cobra.MinimumNArgs(1),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runSummary,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	SummaryCmd.Flags().BoolVar(&opts.Trim, "trim", false, "strip the automatically inferred common path prefix from locations")
	SummaryCmd.Flags().StringSliceVar(&opts.Prefixes, "strip-prefix", nil, "path prefix to strip from locations (repeatable)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "summary")

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
	fmt.Fprintf(out, "Summary for %s\n", fileSet.GetDescription())
	if tools := fileSet.GetDistinctToolNames(); len(tools) > 0 {
		fmt.Fprintf(out, "Tools: %s\n", strings.Join(tools, ", "))
	}
	fmt.Fprintf(out, "Total results: %d\n\n", fileSet.GetResultCount())

	counts, err := fileSet.GetResultCountBySeverity()
	if err != nil {
		return err
	}
	for _, severity := range sarif.Severities {
		fmt.Fprintf(out, "%s: %d\n", severity, counts[severity])
		histogram, err := fileSet.GetIssueCodeHistogram(severity)
		if err != nil {
			return err
		}
		for _, entry := range histogram {
			fmt.Fprintf(out, "  %5d  %s\n", entry.Count, entry.Code)
		}
		fmt.Fprintln(out)
	}
	return nil
}
