package blame

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	internalblame "github.com/sarif-view/sarif-view/internal/blame"
	"github.com/sarif-view/sarif-view/internal/loader"
	"github.com/sarif-view/sarif-view/pkg/shared/config"
	"github.com/sarif-view/sarif-view/pkg/shared/logger"
)

// RunOptions holds flags for the blame command.
type RunOptions struct {
	SourceFolder string
	Trim         bool
	Prefixes     []string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleBlameUsage = `  # Annotate findings with the author of each flagged line
  sarifview blame --source /tmp/juice-shop /tmp/juice-shop/semgrep.sarif

  # Strip an absolute scan prefix so locations resolve inside the repository
  sarifview blame --source . --strip-prefix /home/ci/build report.sarif`

	// BlameCmd represents the command to annotate SARIF findings with git authorship.
	BlameCmd = &cobra.Command{
		Use:                   "blame --source PATH [--trim] [--strip-prefix PREFIX]... PATH...",
		Short:                 "Annotate findings with git blame information",
		Example:               exampleBlameUsage,
		Args:                  cobra.MinimumNArgs(1),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runBlame,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	BlameCmd.Flags().StringVarP(&opts.SourceFolder, "source", "s", ".", "path to the git repository the findings refer to")
	BlameCmd.Flags().BoolVar(&opts.Trim, "trim", false, "strip the automatically inferred common path prefix from locations")
	BlameCmd.Flags().StringSliceVar(&opts.Prefixes, "strip-prefix", nil, "path prefix to strip from locations (repeatable)")
}

func runBlame(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "blame")

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

	annotated, err := internalblame.AnnotateRecords(opts.SourceFolder, records, lg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, record := range annotated {
		author := "unknown"
		if record.Annotation != nil {
			author = record.Annotation.Author
		}
		fmt.Fprintf(out, "%s:%s  [%s]  %s  -- %s\n",
			record.Location, record.Line, record.Severity, record.Code, author)
	}
	return nil
}
