package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/build"
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/config"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/git"
	"github.com/apiarycd/svncommit/internal/publisher"
	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/server"
	"github.com/apiarycd/svncommit/internal/svn"
	"github.com/apiarycd/svncommit/pkg/badgerfx"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var version = "dev"

// errStepFailed marks a commit step whose verdict is false.
var errStepFailed = errors.New("commit step failed")

func Run() {
	root := &cobra.Command{
		Use:          "svncommit",
		Short:        "Commit build working copies back to their repositories",
		Version:      version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.AddCommand(
		newPerformCmd(),
		newWorkerCmd(),
		newCheckCommentCmd(),
		newCredentialsCmd(),
		newRevisionsCmd(),
		newTokenCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errStepFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func coreModules() []fx.Option {
	return []fx.Option{
		logger.Module(),
		logger.WithFxDefaultLogger(),
		validator.Module,
		config.Module(),
	}
}

func commitModules() []fx.Option {
	return []fx.Option{
		badgerfx.Module(),
		credentials.Module(),
		auth.Module(),
		commit.Module(),
		svn.Module(),
		git.Module(),
		remote.Module(),
	}
}

func workerModules() []fx.Option {
	return []fx.Option{
		healthfx.Module(),
		fiberfx.Module(),
		server.Module(),
		fx.Supply(healthfx.Version{Version: version, GoVersion: runtime.Version()}),
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("svncommit worker starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("svncommit worker shutting down gracefully")
					return nil
				},
			})
		}),
	}
}

func publishModules() []fx.Option {
	return []fx.Option{
		build.Module(),
		publisher.Module(),
	}
}

// withApp starts an fx app built from modules, fills targets and stops the
// app once fn returns.
func withApp(ctx context.Context, modules []fx.Option, fn func() error, targets ...any) error {
	app := fx.New(append(modules, fx.Populate(targets...))...)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	return runErr
}

func concat(groups ...[]fx.Option) []fx.Option {
	var all []fx.Option
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
