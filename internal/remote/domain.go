package remote

import (
	"context"
	"io"

	"github.com/apiarycd/svncommit/internal/commit"
)

// Request is the wire form of a commit dispatched to a worker.
type Request struct {
	Root string      `json:"root" validate:"required"`
	Task commit.Task `json:"task"`
}

// Reply carries the outcome and the build-log lines the worker produced.
type Reply struct {
	Outcome commit.Outcome `json:"outcome"`
	Log     []string       `json:"log"`
}

// Channel runs a commit task in the process that owns the workspace root.
// A returned error is a channel failure or an interruption; commit failures
// are reported through the outcome.
type Channel interface {
	Act(ctx context.Context, root string, task commit.Task, sink io.Writer) (commit.Outcome, error)
}
