package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/duyet/i/internal/log"
)

var version = "v0.1.0"

// usageTemplate is used for both --help and usage output.
const usageTemplate = "Usage:\n  {{.UseLine}}\n"

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	dryRun     bool
	check      bool
	root       string
	configPath string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "cigen",
		Short:         "cigen generates the GitHub Actions workflow for Docker images",
		Long:          "Scan <project>/<variant>/Dockerfile directories and render .github/workflows/ci.yaml.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}
	cmd.Version = version
	cmd.SetHelpTemplate(usageTemplate)
	cmd.SetUsageTemplate(usageTemplate)

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the workflow to stdout instead of writing it")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Fail if the workflow file is out of date; never writes")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")
	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "Directory to scan (default: working directory)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default: <root>/cigen.yaml)")

	cmd.AddCommand(newListCmd(&flags))
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err.Error())
	}
}
