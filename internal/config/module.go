package config

import (
	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/comment"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/git"
	"github.com/apiarycd/svncommit/internal/publisher"
	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/apiarycd/svncommit/internal/svn"
	"github.com/apiarycd/svncommit/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:      cfg.Storage.DataDir,
				InMemory: cfg.Storage.InMemory,
			}
		}),
		fx.Provide(func(cfg Config) svn.Config {
			return svn.Config{
				Binary:          cfg.SVN.Binary,
				Timeout:         cfg.SVN.Timeout,
				TrustServerCert: cfg.SVN.TrustServerCert,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				AuthorName:  cfg.Git.AuthorName,
				AuthorEmail: cfg.Git.AuthorEmail,
				Remote:      cfg.Git.Remote,
				Timeout:     cfg.Git.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) credentials.Config {
			return credentials.Config{
				DefaultUsername:   cfg.Credentials.DefaultUsername,
				DefaultPassword:   cfg.Credentials.DefaultPassword,
				DefaultPrivateKey: cfg.Credentials.DefaultPrivateKey,
				DefaultPassphrase: cfg.Credentials.DefaultPassphrase,
			}
		}),
		fx.Provide(func(cfg Config) remote.Config {
			return remote.Config{
				URL:     cfg.Worker.URL,
				Timeout: cfg.Worker.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) auth.Config {
			return auth.Config{
				SecretKey: []byte(cfg.Auth.SecretKey),
				Issuer:    cfg.Auth.Issuer,
				TokenExp:  cfg.Auth.TokenExp,
			}
		}),
		fx.Provide(func(cfg Config) (publisher.Config, error) {
			kind, err := scm.ParseKind(cfg.SCM.Kind)
			if err != nil {
				return publisher.Config{}, err
			}
			return publisher.Config{
				Kind:     kind,
				Template: cfg.Comment.Template,
			}, nil
		}),
		fx.Provide(func(cfg Config) comment.PropertySource {
			return func() comment.Properties {
				return comment.SystemProperties(cfg.Comment.Properties)
			}
		}),
	)
}
