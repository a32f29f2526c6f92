package internal

import (
	"fmt"
	"text/tabwriter"

	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/pkg/badgerfx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func withCredentials(cmd *cobra.Command, fn func(*credentials.Service) error) error {
	var svc *credentials.Service

	modules := concat(coreModules(), []fx.Option{badgerfx.Module(), credentials.Module()})

	return withApp(cmd.Context(), modules, func() error {
		return fn(svc)
	}, &svc)
}

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored repository credentials",
	}

	cmd.AddCommand(newCredentialsSetCmd(), newCredentialsListCmd(), newCredentialsDeleteCmd())

	return cmd
}

func newCredentialsSetCmd() *cobra.Command {
	var entry credentials.Entry

	cmd := &cobra.Command{
		Use:   "set <url-prefix>",
		Short: "Store credentials for a repository URL prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.URLPrefix = args[0]
			return withCredentials(cmd, func(svc *credentials.Service) error {
				return svc.Set(cmd.Context(), entry)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&entry.Project, "project", "p", "", "project the entry applies to (empty for all projects)")
	f.StringVarP(&entry.Credentials.Username, "username", "u", "", "user name")
	f.StringVar(&entry.Credentials.Password, "password", "", "password")
	f.StringVar(&entry.Credentials.PrivateKeyPath, "private-key", "", "path to an SSH private key")
	f.StringVar(&entry.Credentials.Passphrase, "passphrase", "", "private key passphrase")

	return cmd
}

func newCredentialsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credentials without secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCredentials(cmd, func(svc *credentials.Service) error {
				entries, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "PROJECT\tURL PREFIX\tUSERNAME\tPRIVATE KEY")
				for _, e := range entries {
					project := e.Project
					if project == "" {
						project = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", project, e.URLPrefix, e.Credentials.Username, e.Credentials.PrivateKeyPath)
				}
				return w.Flush()
			})
		},
	}
}

func newCredentialsDeleteCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "delete <url-prefix>",
		Short: "Delete stored credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCredentials(cmd, func(svc *credentials.Service) error {
				return svc.Delete(cmd.Context(), project, args[0])
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project the entry applies to (empty for all projects)")

	return cmd
}
