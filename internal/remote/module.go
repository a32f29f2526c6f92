package remote

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"remote",
		logger.WithNamedLogger("remote"),
		fx.Provide(NewRouter),
	)
}
