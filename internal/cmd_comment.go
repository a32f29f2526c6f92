package internal

import (
	"errors"
	"fmt"

	"github.com/apiarycd/svncommit/internal/comment"
	"github.com/apiarycd/svncommit/internal/messages"
	"github.com/spf13/cobra"
)

func newCheckCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-comment <template>",
		Short: "Validate a commit comment template against an empty environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var properties comment.PropertySource

			return withApp(cmd.Context(), coreModules(), func() error {
				preview, err := comment.Evaluate(nil, properties(), args[0])

				var cerr *comment.CompilationError
				switch {
				case errors.As(err, &cerr):
					fmt.Fprintln(cmd.OutOrStdout(), messages.BadTemplate(cerr.Error()))
					return errStepFailed
				case err != nil:
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "OK: %q\n", preview)
				return nil
			}, &properties)
		},
	}
}
