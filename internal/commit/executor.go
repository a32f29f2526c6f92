package commit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/apiarycd/svncommit/internal/scm"
	"go.uber.org/zap"
)

// Executor runs commit tasks against a local workspace.
type Executor struct {
	openers map[scm.Kind]Opener

	metrics *Metrics
	logger  *zap.Logger
}

func NewExecutor(openers []Opener, metrics *Metrics, logger *zap.Logger) *Executor {
	byKind := make(map[scm.Kind]Opener, len(openers))
	for _, o := range openers {
		byKind[o.Kind()] = o
	}

	return &Executor{
		openers: byKind,

		metrics: metrics,
		logger:  logger,
	}
}

// Execute commits the working copy of task.Location below root and writes
// exactly one line to sink. The returned error is non-nil only when ctx was
// cancelled; every other failure is reported through the outcome.
func (e *Executor) Execute(ctx context.Context, root string, task Task, sink io.Writer) (Outcome, error) {
	started := time.Now()
	path := filepath.Join(root, task.Location.Dir())

	outcome, err := e.commit(ctx, path, task)
	if err != nil {
		return Outcome{}, err
	}

	if _, werr := fmt.Fprintln(sink, outcome.Line()); werr != nil {
		e.logger.Warn("failed to write build log", zap.Error(werr))
	}

	e.metrics.observe(task.Kind, outcome.Status, time.Since(started))

	fields := []zap.Field{
		zap.Stringer("location", task.Location),
		zap.String("path", path),
		zap.String("status", string(outcome.Status)),
	}
	if outcome.OK() {
		e.logger.Info("commit finished", append(fields, zap.Int64("revision", outcome.Revision))...)
	} else {
		e.logger.Error("commit failed", append(fields, zap.String("detail", outcome.Detail))...)
	}

	return outcome, nil
}

func (e *Executor) commit(ctx context.Context, path string, task Task) (Outcome, error) {
	opener, ok := e.openers[task.Kind]
	if !ok {
		return failed(task.Location, fmt.Sprintf("%s: %s", ErrUnsupportedKind, task.Kind)), nil
	}

	session, err := opener.Open(task.Credentials)
	if err != nil {
		return failed(task.Location, err.Error()), nil
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			e.logger.Warn("failed to close session", zap.Error(cerr))
		}
	}()

	info, err := session.Commit(ctx, Request{
		Path:    path,
		Message: task.Message,
		Depth:   DepthInfinity,
	})
	switch {
	case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return Outcome{}, err
	case err != nil:
		return failed(task.Location, err.Error()), nil
	case info.ErrorMessage != "":
		return failed(task.Location, info.ErrorMessage), nil
	case info.NewRevision < 0:
		return nothingToCommit(task.Location), nil
	default:
		return committed(task.Location, info.NewRevision), nil
	}
}
