package publisher

import (
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"publisher",
		logger.WithNamedLogger("publisher"),
		fx.Provide(
			func(s *credentials.Service) CredentialLookup { return s },
			fx.Private,
		),
		fx.Provide(New),
	)
}
