package internal

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Serve commit tasks and the credentials API over HTTP",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fx.New(concat(coreModules(), commitModules(), workerModules())...).Run()
		},
	}
}
