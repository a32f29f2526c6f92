package svn

import (
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/scm"
	"go.uber.org/zap"
)

type Opener struct {
	config Config

	runner CommandRunner
	logger *zap.Logger
}

func NewOpener(config Config, runner CommandRunner, logger *zap.Logger) commit.Opener {
	if config.Binary == "" {
		config.Binary = "svn"
	}

	return &Opener{
		config: config,

		runner: runner,
		logger: logger,
	}
}

// Kind implements commit.Opener.
func (o *Opener) Kind() scm.Kind {
	return scm.KindSubversion
}

// Open implements commit.Opener.
func (o *Opener) Open(creds credentials.Credentials) (commit.Session, error) {
	return newSession(o.config, creds, o.runner, o.logger)
}
