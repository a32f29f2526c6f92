package remote

import (
	"context"
	"io"

	"github.com/apiarycd/svncommit/internal/commit"
)

// LocalChannel executes tasks in-process.
type LocalChannel struct {
	executor *commit.Executor
}

func NewLocalChannel(executor *commit.Executor) *LocalChannel {
	return &LocalChannel{executor: executor}
}

// Act implements Channel.
func (c *LocalChannel) Act(ctx context.Context, root string, task commit.Task, sink io.Writer) (commit.Outcome, error) {
	return c.executor.Execute(ctx, root, task, sink)
}

var _ Channel = (*LocalChannel)(nil)
