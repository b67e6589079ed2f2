package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	blamecmd "github.com/sarif-view/sarif-view/cmd/blame"
	csvcmd "github.com/sarif-view/sarif-view/cmd/csv"
	recordscmd "github.com/sarif-view/sarif-view/cmd/records"
	summarycmd "github.com/sarif-view/sarif-view/cmd/summary"
	"github.com/sarif-view/sarif-view/cmd/version"
	"github.com/sarif-view/sarif-view/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "sarifview [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Sarifview aggregates static analysis results in SARIF format.",
		Long: `Sarifview reads SARIF files produced by static analysis tools and exposes
	uniform views over them: summaries by severity, issue code histograms, flat
	record listings, CSV export and git blame enrichment.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.AddCommand(summarycmd.SummaryCmd)
	rootCmd.AddCommand(recordscmd.RecordsCmd)
	rootCmd.AddCommand(csvcmd.CSVCmd)
	rootCmd.AddCommand(blamecmd.BlameCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	AppConfig = &config.Config{}
	if cfgFile != "" {
		cfg, err := config.NewConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %q: %v\n", cfgFile, err)
			os.Exit(1)
		}
		AppConfig = cfg
	}

	summarycmd.Init(AppConfig)
	recordscmd.Init(AppConfig)
	csvcmd.Init(AppConfig)
	blamecmd.Init(AppConfig)
}
