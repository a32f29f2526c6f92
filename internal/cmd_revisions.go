package internal

import (
	"fmt"
	"maps"
	"slices"

	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/spf13/cobra"
)

func newRevisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions <revision-file>",
		Short: "Print the repository revisions recorded at checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revisions, err := scm.ParseRevisionFile(args[0])
			if err != nil {
				return err
			}

			for _, url := range slices.Sorted(maps.Keys(revisions)) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", url, revisions[url])
			}

			return nil
		},
	}
}
