package build

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"build",
		logger.WithNamedLogger("build"),
		fx.Provide(NewLoader),
	)
}
