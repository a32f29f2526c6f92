package remote

import (
	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/commit"
	"go.uber.org/zap"
)

// Router picks the channel for a workspace: a worker URL selects the HTTP
// channel, an empty one runs in-process.
type Router struct {
	config Config
	local  *LocalChannel

	tokens *auth.Service
	logger *zap.Logger
}

func NewRouter(config Config, executor *commit.Executor, tokens *auth.Service, logger *zap.Logger) *Router {
	return &Router{
		config: config,
		local:  NewLocalChannel(executor),

		tokens: tokens,
		logger: logger,
	}
}

// Channel returns the channel for workerURL, falling back to the configured
// worker.
func (r *Router) Channel(workerURL string) Channel {
	if workerURL == "" {
		workerURL = r.config.URL
	}
	if workerURL == "" {
		return r.local
	}

	return NewHTTPChannel(Config{URL: workerURL, Timeout: r.config.Timeout}, r.tokens, r.logger)
}
