package git

import (
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/scm"
	"go.uber.org/zap"
)

type Opener struct {
	config Config

	logger *zap.Logger
}

func NewOpener(config Config, logger *zap.Logger) commit.Opener {
	if config.Remote == "" {
		config.Remote = "origin"
	}
	if config.AuthorName == "" {
		config.AuthorName = "svncommit"
	}

	return &Opener{
		config: config,

		logger: logger,
	}
}

// Kind implements commit.Opener.
func (o *Opener) Kind() scm.Kind {
	return scm.KindGit
}

// Open implements commit.Opener.
func (o *Opener) Open(creds credentials.Credentials) (commit.Session, error) {
	auth, err := newAuth(creds)
	if err != nil {
		return nil, err
	}

	return &Session{
		config: o.config,
		auth:   auth,

		logger: o.logger,
	}, nil
}
