package publisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/apiarycd/svncommit/internal/build"
	"github.com/apiarycd/svncommit/internal/comment"
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/messages"
	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialLookup resolves the authentication provider of one location.
type CredentialLookup interface {
	Lookup(ctx context.Context, project, repositoryURL string) (*credentials.Provider, error)
}

// Publisher commits a finished build's working copies back to their
// repositories.
type Publisher struct {
	config Config

	lookup     CredentialLookup
	properties comment.PropertySource
	logger     *zap.Logger
}

func New(config Config, lookup CredentialLookup, properties comment.PropertySource, logger *zap.Logger) *Publisher {
	if config.Kind == "" {
		config.Kind = scm.KindSubversion
	}
	if config.Template == "" {
		config.Template = comment.DefaultTemplate
	}
	if properties == nil {
		properties = comment.Static(nil)
	}

	return &Publisher{
		config: config,

		lookup:     lookup,
		properties: properties,
		logger:     logger,
	}
}

// Perform commits every location of b's root project. The boolean is the
// build-step verdict; an error is returned only for I/O failures and
// interruption. An empty template selects the configured one.
func (p *Publisher) Perform(ctx context.Context, b build.Build, template string, sink io.Writer) (bool, error) {
	if template == "" {
		template = p.config.Template
	}

	logger := p.logger.With(zap.String("invocation", uuid.NewString()))
	started := time.Now()

	if !b.Result().Successful() {
		logger.Info("build not successful, skipping", zap.String("result", string(b.Result())))
		return true, writeLine(sink, messages.UnsuccessfulBuild())
	}

	rootProject := b.Project().RootProject()
	rootBuild := b.RootBuild()

	config := rootProject.SCM()
	if config == nil || config.Kind() != p.config.Kind {
		actual := string(scm.KindNone)
		if config != nil {
			actual = config.String()
		}
		logger.Info("project not under expected source control",
			zap.String("project", rootProject.Name()),
			zap.String("expected", string(p.config.Kind)),
			zap.String("actual", actual))
		return true, writeLine(sink, messages.WrongKind(string(p.config.Kind), actual))
	}

	env := rootBuild.Environment()
	if err := config.BuildEnvVars(rootBuild, env); err != nil {
		return false, fmt.Errorf("failed to build environment: %w", err)
	}

	message, err := comment.Evaluate(env, p.properties(), template)
	if err != nil {
		var cerr *comment.CompilationError
		if errors.As(err, &cerr) {
			logger.Error("malformed comment template", zap.Error(err))
			return false, writeLine(sink, messages.BadTemplate(cerr.Error()))
		}
		return false, err
	}

	var report commit.Report
	for _, location := range config.Locations(env) {
		provider, err := p.lookup.Lookup(ctx, rootProject.Name(), location.URL)
		if errors.Is(err, credentials.ErrNoProvider) {
			logger.Error("no authentication provider, aborting",
				zap.String("project", rootProject.Name()),
				zap.String("url", location.URL))
			return false, writeLine(sink, messages.NoAuthProvider(location.URL))
		}
		if err != nil {
			return false, fmt.Errorf("failed to look up credentials: %w", err)
		}

		outcome, err := rootBuild.Workspace().Act(ctx, commit.Task{
			Kind:        config.Kind(),
			Location:    location,
			Message:     message,
			Credentials: provider.Credentials,
		}, sink)
		if err != nil {
			return false, err
		}

		report.Add(outcome)
	}

	ok := report.OK()
	fields := []zap.Field{
		zap.String("project", rootProject.Name()),
		zap.Int("locations", len(report.Outcomes)),
		zap.Duration("elapsed", time.Since(started)),
	}
	if ok {
		logger.Info("commit step succeeded", fields...)
	} else {
		logger.Warn("commit step failed", append(fields, zap.Error(report.Err()))...)
	}

	return ok, nil
}

func writeLine(sink io.Writer, line string) error {
	if _, err := fmt.Fprintln(sink, line); err != nil {
		return fmt.Errorf("failed to write build log: %w", err)
	}
	return nil
}
