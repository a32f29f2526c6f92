package internal

import (
	"fmt"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newTokenCmd() *cobra.Command {
	var flags struct {
		subject string
		role    string
	}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a worker API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var tokens *auth.Service

			return withApp(cmd.Context(), concat(coreModules(), []fx.Option{auth.Module()}), func() error {
				token, err := tokens.Issue(flags.subject, auth.Role(flags.role))
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			}, &tokens)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.subject, "subject", "operator", "token subject")
	f.StringVar(&flags.role, "role", string(auth.RoleOperator), "token role (operator or publisher)")

	return cmd
}
