package commit

import (
	"github.com/go-core-fx/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"commit",
		logger.WithNamedLogger("commit"),
		fx.Provide(
			func() prometheus.Registerer { return prometheus.DefaultRegisterer },
			fx.Private,
		),
		fx.Provide(NewMetrics, fx.Private),
		fx.Provide(
			fx.Annotate(NewExecutor, fx.ParamTags(`group:"openers"`)),
		),
	)
}
