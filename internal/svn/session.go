package svn

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"go.uber.org/zap"
)

var (
	committedRevision = regexp.MustCompile(`(?m)^Committed revision (\d+)\.`)
	errorLine         = regexp.MustCompile(`(?m)^svn: (E\d+: .*)$`)
)

// Session drives the svn command-line client with an isolated runtime
// configuration directory that lives until Close.
type Session struct {
	config    Config
	creds     credentials.Credentials
	configDir string

	runner CommandRunner
	logger *zap.Logger
}

func newSession(config Config, creds credentials.Credentials, runner CommandRunner, logger *zap.Logger) (*Session, error) {
	dir, err := os.MkdirTemp("", "svncommit-")
	if err != nil {
		return nil, fmt.Errorf("failed to create svn config dir: %w", err)
	}

	return &Session{
		config:    config,
		creds:     creds,
		configDir: dir,

		runner: runner,
		logger: logger,
	}, nil
}

// Commit implements commit.Session.
func (s *Session) Commit(ctx context.Context, req commit.Request) (commit.Info, error) {
	if s.configDir == "" {
		return commit.Info{}, ErrSessionClosed
	}

	runCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	cmd := Command{
		Dir:  req.Path,
		Env:  s.env(),
		Name: s.config.Binary,
		Args: s.args(req),
		// svn reads the password from its first stdin line.
		Stdin: s.creds.Password,
	}

	s.logger.Debug("running svn commit", zap.String("path", req.Path))

	out, err := s.runner.Run(runCtx, cmd)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return commit.Info{}, fmt.Errorf("svn commit interrupted: %w", ctxErr)
	}
	if err != nil {
		if runCtx.Err() != nil {
			return commit.Info{}, fmt.Errorf("%w after %s", ErrTimeout, s.config.Timeout)
		}
		return commit.Info{}, fmt.Errorf("%w: %s", ErrCommandFailed, summarize(out, err))
	}

	return parseCommitOutput(string(out)), nil
}

// Close removes the session's runtime configuration.
func (s *Session) Close() error {
	if s.configDir == "" {
		return nil
	}

	dir := s.configDir
	s.configDir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove svn config dir: %w", err)
	}

	return nil
}

func (s *Session) args(req commit.Request) []string {
	depth := req.Depth
	if depth == "" {
		depth = commit.DepthInfinity
	}

	args := []string{
		"commit",
		"--non-interactive",
		"--config-dir", s.configDir,
		"--depth", string(depth),
		"-m", req.Message,
	}

	if s.config.TrustServerCert {
		args = append(args, "--trust-server-cert-failures=unknown-ca,cn-mismatch,expired,not-yet-valid,other")
	}

	if s.creds.Username != "" {
		args = append(args, "--username", s.creds.Username)
	}
	if s.creds.Password != "" {
		args = append(args, "--password-from-stdin")
	}
	args = append(args, "--no-auth-cache")

	if req.KeepLocks {
		args = append(args, "--no-unlock")
	}
	for _, cl := range req.Changelists {
		args = append(args, "--changelist", cl)
	}
	if req.KeepChangelists {
		args = append(args, "--keep-changelists")
	}

	keys := make([]string, 0, len(req.RevisionProperties))
	for k := range req.RevisionProperties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, "--with-revprop", k+"="+req.RevisionProperties[k])
	}

	return append(args, ".")
}

func (s *Session) env() []string {
	env := []string{"LC_ALL=C"}
	if s.creds.PrivateKeyPath != "" {
		env = append(env, "SVN_SSH=ssh -i "+strconv.Quote(s.creds.PrivateKeyPath)+" -o IdentitiesOnly=yes")
	}
	return env
}

// parseCommitOutput extracts the new revision and any post-commit warning.
// No "Committed revision" line means nothing was committed.
func parseCommitOutput(out string) commit.Info {
	info := commit.Info{NewRevision: commit.NoRevision}

	if m := committedRevision.FindStringSubmatch(out); m != nil {
		if rev, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			info.NewRevision = rev
		}
	}

	if i := strings.Index(out, "\nWarning: "); i >= 0 {
		info.ErrorMessage = strings.TrimSpace(out[i+len("\nWarning: "):])
	} else if strings.HasPrefix(out, "Warning: ") {
		info.ErrorMessage = strings.TrimSpace(strings.TrimPrefix(out, "Warning: "))
	}

	return info
}

func summarize(out []byte, err error) string {
	matches := errorLine.FindAllStringSubmatch(string(out), -1)
	if len(matches) == 0 {
		if text := strings.TrimSpace(string(out)); text != "" {
			return text
		}
		return err.Error()
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m[1])
	}

	return strings.Join(lines, "; ")
}
