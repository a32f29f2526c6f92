package git

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"go.uber.org/zap"
)

// Session commits a git working tree and pushes to the configured remote
// when one exists. The reported revision is the number of commits reachable
// from HEAD after the commit.
type Session struct {
	config Config
	auth   transport.AuthMethod
	closed bool

	logger *zap.Logger
}

// Commit implements commit.Session. Only changes under req.Path are staged
// and considered.
func (s *Session) Commit(ctx context.Context, req commit.Request) (commit.Info, error) {
	if s.closed {
		return commit.Info{}, ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return commit.Info{}, err
	}

	repo, err := git.PlainOpenWithOptions(req.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	prefix, err := relativePath(worktree.Filesystem.Root(), req.Path)
	if err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if err := stage(worktree, prefix, req.Depth); err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	if !hasStaged(status, prefix) {
		return s.pushPending(ctx, repo, req.Path)
	}

	hash, err := worktree.Commit(req.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.config.AuthorName,
			Email: s.config.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return commit.Info{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	revision, err := countCommits(repo)
	if err != nil {
		return commit.Info{}, err
	}

	s.logger.Info("commit created",
		zap.String("path", req.Path),
		zap.String("hash", hash.String()),
		zap.Int64("revision", revision))

	if err := s.push(ctx, repo); err != nil {
		return commit.Info{}, err
	}

	return commit.Info{NewRevision: revision}, nil
}

// pushPending delivers local commits left behind by an earlier failed push.
// A clean subtree with nothing to push yields NoRevision.
func (s *Session) pushPending(ctx context.Context, repo *git.Repository, dir string) (commit.Info, error) {
	ahead, err := s.ahead(repo)
	if err != nil {
		return commit.Info{}, err
	}
	if !ahead {
		s.logger.Info("working tree clean", zap.String("path", dir))
		return commit.Info{NewRevision: commit.NoRevision}, nil
	}

	revision, err := countCommits(repo)
	if err != nil {
		return commit.Info{}, err
	}

	s.logger.Info("pushing pending commits", zap.String("path", dir), zap.Int64("revision", revision))
	if err := s.push(ctx, repo); err != nil {
		return commit.Info{}, err
	}

	return commit.Info{NewRevision: revision}, nil
}

// ahead reports whether the current branch has commits its remote-tracking
// ref does not. A branch that was never pushed counts as ahead.
func (s *Session) ahead(repo *git.Repository) (bool, error) {
	if _, err := repo.Remote(s.config.Remote); err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	if !head.Name().IsBranch() {
		return false, nil
	}

	tracking, err := repo.Reference(plumbing.NewRemoteReferenceName(s.config.Remote, head.Name().Short()), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return tracking.Hash() != head.Hash(), nil
}

// Close implements commit.Session.
func (s *Session) Close() error {
	s.closed = true
	s.auth = nil
	return nil
}

func (s *Session) push(ctx context.Context, repo *git.Repository) error {
	if _, err := repo.Remote(s.config.Remote); err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			s.logger.Debug("no remote configured, skipping push", zap.String("remote", s.config.Remote))
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: s.config.Remote,
		Auth:       s.auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	return nil
}

func countCommits(repo *git.Repository) (int64, error) {
	head, err := repo.Head()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	defer iter.Close()

	var count int64
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return count, nil
}

// relativePath returns dir relative to the worktree root in slash form.
func relativePath(root, dir string) (string, error) {
	root, err := resolve(root)
	if err != nil {
		return "", err
	}
	dir, err = resolve(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", dir, root)
	}

	return filepath.ToSlash(rel), nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// stage adds working tree changes under prefix to the index according to
// depth. DepthEmpty commits only what is already staged.
func stage(worktree *git.Worktree, prefix string, depth commit.Depth) error {
	switch depth {
	case commit.DepthInfinity, "":
		if prefix == "." {
			return worktree.AddWithOptions(&git.AddOptions{All: true})
		}
		return worktree.AddWithOptions(&git.AddOptions{Path: filepath.FromSlash(prefix)})
	case commit.DepthFiles:
		status, err := worktree.Status()
		if err != nil {
			return err
		}
		for name, file := range status {
			if path.Dir(name) != prefix || file.Worktree == git.Unmodified {
				continue
			}
			if err := worktree.AddWithOptions(&git.AddOptions{Path: filepath.FromSlash(name)}); err != nil {
				return err
			}
		}
	}

	return nil
}

// hasStaged reports whether the index holds changes under prefix.
func hasStaged(status git.Status, prefix string) bool {
	for name, file := range status {
		if file.Staging == git.Unmodified || file.Staging == git.Untracked {
			continue
		}
		if prefix == "." || name == prefix || strings.HasPrefix(name, prefix+"/") {
			return true
		}
	}
	return false
}
