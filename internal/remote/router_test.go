package remote_test

import (
	"testing"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/remote"
	"go.uber.org/zap/zaptest"
)

func TestRouter_Channel(t *testing.T) {
	logger := zaptest.NewLogger(t)
	executor := commit.NewExecutor(nil, nil, logger)

	local := remote.NewRouter(remote.Config{}, executor, nil, logger)
	if _, ok := local.Channel("").(*remote.LocalChannel); !ok {
		t.Error("no worker URL must select the in-process channel")
	}
	if _, ok := local.Channel("http://worker:3000").(*remote.HTTPChannel); !ok {
		t.Error("explicit worker URL must select the HTTP channel")
	}

	configured := remote.NewRouter(remote.Config{URL: "http://worker:3000"}, executor, nil, logger)
	if _, ok := configured.Channel("").(*remote.HTTPChannel); !ok {
		t.Error("configured worker URL must select the HTTP channel")
	}
}
