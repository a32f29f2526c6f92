package build

import (
	"context"
	"fmt"
	"io"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/scm"
)

// Result is the outcome status of a build.
type Result string

const (
	ResultSuccess  Result = "success"
	ResultUnstable Result = "unstable"
	ResultFailure  Result = "failure"
	ResultNotBuilt Result = "not_built"
	ResultAborted  Result = "aborted"
)

// Successful reports whether the build finished with full success.
func (r Result) Successful() bool {
	return r == ResultSuccess
}

// SCM is the source-control configuration a root project exposes.
type SCM interface {
	scm.SCM
	Locations(env map[string]string) []scm.Location
	BuildEnvVars(src scm.RevisionSource, env map[string]string) error
}

// Project is a job definition. Nested projects point at their root.
type Project interface {
	Name() string
	RootProject() Project
	SCM() SCM
}

// Build is a read-only view of one build. A build that is not nested is its
// own root build.
type Build interface {
	scm.RevisionSource

	Number() int
	Result() Result
	Project() Project
	RootBuild() Build
	Environment() map[string]string
	Workspace() Workspace
}

// Workspace is the build's working directory on whichever node owns it.
type Workspace struct {
	Root    string
	Channel remote.Channel
}

// Act runs task against the workspace through its channel.
func (w Workspace) Act(ctx context.Context, task commit.Task, sink io.Writer) (commit.Outcome, error) {
	if w.Channel == nil {
		return commit.Outcome{}, fmt.Errorf("%w: %s", ErrNoChannel, w.Root)
	}

	return w.Channel.Act(ctx, w.Root, task, sink)
}
