package cmd

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/duyet/i/internal/log"
	"github.com/duyet/i/internal/scan"
	"github.com/duyet/i/internal/summary"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the projects and variants that would get a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.OutOrStdout())

			root, cfg, err := setup(*flags)
			if err != nil {
				return err
			}
			m, err := scan.Scan(osfs.New(root), scanOptions(cfg))
			if err != nil {
				return err
			}

			log.Section(fmt.Sprintf("Images under %s", root))
			summary.Print(cmd.OutOrStdout(), m)
			return nil
		},
	}
}
