package internal

import (
	"github.com/apiarycd/svncommit/internal/build"
	"github.com/apiarycd/svncommit/internal/publisher"
	"github.com/spf13/cobra"
)

func newPerformCmd() *cobra.Command {
	var flags struct {
		descriptor string
		template   string
	}

	cmd := &cobra.Command{
		Use:   "perform",
		Short: "Commit the working copies of a finished build",
		Long: "Reads a build descriptor, resolves the root project's repository locations and commits\n" +
			"each of them with the evaluated comment template. Exits non-zero when the step fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				loader *build.Loader
				pub    *publisher.Publisher
			)

			modules := concat(coreModules(), commitModules(), publishModules())

			return withApp(cmd.Context(), modules, func() error {
				b, err := loader.Load(flags.descriptor)
				if err != nil {
					return err
				}

				ok, err := pub.Perform(cmd.Context(), b, flags.template, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					return errStepFailed
				}

				return nil
			}, &loader, &pub)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.descriptor, "build", "b", "build.yaml", "build descriptor (YAML or JSON)")
	f.StringVarP(&flags.template, "template", "t", "", "commit comment template (defaults to the configured one)")

	return cmd
}
