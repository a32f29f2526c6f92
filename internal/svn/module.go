package svn

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"svn",
		logger.WithNamedLogger("svn"),
		fx.Provide(NewExecRunner, fx.Private),
		fx.Provide(
			fx.Annotate(NewOpener, fx.ResultTags(`group:"openers"`)),
		),
	)
}
