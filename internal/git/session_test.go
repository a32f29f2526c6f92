package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/git"
	"github.com/apiarycd/svncommit/internal/scm"
	gogit "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap/zaptest"
)

func initRepo(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if _, err := gogit.PlainInit(repoPath, false); err != nil {
		t.Fatal(err)
	}

	return repoPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func openSession(t *testing.T) commit.Session {
	t.Helper()

	return openSessionWith(t, credentials.Credentials{Username: "ci", Password: "token"})
}

func openSessionWith(t *testing.T, creds credentials.Credentials) commit.Session {
	t.Helper()

	opener := git.NewOpener(git.Config{AuthorName: "CI", AuthorEmail: "ci@example.com"}, zaptest.NewLogger(t))
	if opener.Kind() != scm.KindGit {
		t.Fatalf("Kind() = %s", opener.Kind())
	}

	session, err := opener.Open(creds)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestSession_Commit(t *testing.T) {
	repoPath := initRepo(t)
	session := openSession(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(repoPath, "version.txt"), "1.0.0")

	info, err := session.Commit(ctx, commit.Request{Path: repoPath, Message: "release 1.0.0", Depth: commit.DepthInfinity})
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if info.NewRevision != 1 || info.ErrorMessage != "" {
		t.Errorf("first commit info = %+v, want revision 1", info)
	}

	info, err = session.Commit(ctx, commit.Request{Path: repoPath, Message: "noop", Depth: commit.DepthInfinity})
	if err != nil {
		t.Fatalf("clean commit: %v", err)
	}
	if info.NewRevision != commit.NoRevision {
		t.Errorf("clean tree revision = %d, want %d", info.NewRevision, commit.NoRevision)
	}

	writeFile(t, filepath.Join(repoPath, "nested", "notes.txt"), "changed")

	info, err = session.Commit(ctx, commit.Request{Path: filepath.Join(repoPath, "nested"), Message: "notes"})
	if err != nil {
		t.Fatalf("nested commit: %v", err)
	}
	if info.NewRevision != 2 {
		t.Errorf("nested commit revision = %d, want 2", info.NewRevision)
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	last, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if last.Message != "notes" || last.Author.Name != "CI" {
		t.Errorf("last commit = %q by %q", last.Message, last.Author.Name)
	}
}

func headFiles(t *testing.T, repoPath string) map[string]bool {
	t.Helper()

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	last, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	tree, err := last.Tree()
	if err != nil {
		t.Fatal(err)
	}

	files := map[string]bool{}
	for _, entry := range tree.Entries {
		if !entry.Mode.IsFile() {
			sub, err := tree.Tree(entry.Name)
			if err != nil {
				t.Fatal(err)
			}
			for _, child := range sub.Entries {
				files[entry.Name+"/"+child.Name] = true
			}
			continue
		}
		files[entry.Name] = true
	}

	return files
}

func TestSession_CommitIsLimitedToLocation(t *testing.T) {
	repoPath := initRepo(t)
	session := openSession(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(repoPath, "a", "x.txt"), "x")
	writeFile(t, filepath.Join(repoPath, "b", "y.txt"), "y")

	info, err := session.Commit(ctx, commit.Request{Path: filepath.Join(repoPath, "a"), Message: "a", Depth: commit.DepthInfinity})
	if err != nil {
		t.Fatalf("commit a: %v", err)
	}
	if info.NewRevision != 1 {
		t.Errorf("commit a revision = %d, want 1", info.NewRevision)
	}

	files := headFiles(t, repoPath)
	if !files["a/x.txt"] || files["b/y.txt"] {
		t.Errorf("commit a contains %v, want only a/x.txt", files)
	}

	info, err = session.Commit(ctx, commit.Request{Path: filepath.Join(repoPath, "b"), Message: "b", Depth: commit.DepthInfinity})
	if err != nil {
		t.Fatalf("commit b: %v", err)
	}
	if info.NewRevision != 2 {
		t.Errorf("commit b revision = %d, want 2", info.NewRevision)
	}
	if files := headFiles(t, repoPath); !files["a/x.txt"] || !files["b/y.txt"] {
		t.Errorf("commit b tree = %v", files)
	}

	info, err = session.Commit(ctx, commit.Request{Path: filepath.Join(repoPath, "a"), Message: "noop"})
	if err != nil {
		t.Fatalf("clean commit: %v", err)
	}
	if info.NewRevision != commit.NoRevision {
		t.Errorf("clean location revision = %d, want %d", info.NewRevision, commit.NoRevision)
	}
}

func TestSession_CommitStagesDeletionsUnderLocation(t *testing.T) {
	repoPath := initRepo(t)
	session := openSession(t)
	ctx := context.Background()

	writeFile(t, filepath.Join(repoPath, "a", "x.txt"), "x")
	writeFile(t, filepath.Join(repoPath, "a", "old.txt"), "old")
	if _, err := session.Commit(ctx, commit.Request{Path: repoPath, Message: "init"}); err != nil {
		t.Fatalf("init commit: %v", err)
	}

	if err := os.Remove(filepath.Join(repoPath, "a", "old.txt")); err != nil {
		t.Fatal(err)
	}

	info, err := session.Commit(ctx, commit.Request{Path: filepath.Join(repoPath, "a"), Message: "drop old"})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if info.NewRevision != 2 {
		t.Errorf("revision = %d, want 2", info.NewRevision)
	}
	if files := headFiles(t, repoPath); files["a/old.txt"] || !files["a/x.txt"] {
		t.Errorf("tree = %v, want a/x.txt only", files)
	}
}

func TestSession_PushesPendingCommitAfterFailedPush(t *testing.T) {
	repoPath := initRepo(t)
	remotePath := filepath.Join(t.TempDir(), "remote.git")
	session := openSessionWith(t, credentials.Credentials{})
	ctx := context.Background()

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remotePath}}); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(repoPath, "version.txt"), "1.0.0")

	_, err = session.Commit(ctx, commit.Request{Path: repoPath, Message: "release"})
	if !errors.Is(err, git.ErrPushFailed) {
		t.Fatalf("err = %v, want ErrPushFailed", err)
	}

	remote, err := gogit.PlainInit(remotePath, true)
	if err != nil {
		t.Fatal(err)
	}

	info, err := session.Commit(ctx, commit.Request{Path: repoPath, Message: "retry"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if info.NewRevision != 1 {
		t.Errorf("retry revision = %d, want 1", info.NewRevision)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	pushed, err := remote.Reference(head.Name(), true)
	if err != nil {
		t.Fatalf("remote branch: %v", err)
	}
	if pushed.Hash() != head.Hash() {
		t.Errorf("remote at %s, want %s", pushed.Hash(), head.Hash())
	}

	info, err = session.Commit(ctx, commit.Request{Path: repoPath, Message: "noop"})
	if err != nil {
		t.Fatalf("noop: %v", err)
	}
	if info.NewRevision != commit.NoRevision {
		t.Errorf("up-to-date revision = %d, want %d", info.NewRevision, commit.NoRevision)
	}

	tracking, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", head.Name().Short()), true)
	if err != nil || tracking.Hash() != head.Hash() {
		t.Errorf("tracking ref = %v, %v", tracking, err)
	}
}

func TestSession_NotARepository(t *testing.T) {
	session := openSession(t)

	_, err := session.Commit(context.Background(), commit.Request{Path: t.TempDir(), Message: "m"})
	if !errors.Is(err, git.ErrRepositoryNotFound) {
		t.Fatalf("err = %v, want ErrRepositoryNotFound", err)
	}
}

func TestSession_Cancelled(t *testing.T) {
	repoPath := initRepo(t)
	session := openSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Commit(ctx, commit.Request{Path: repoPath, Message: "m"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSession_Closed(t *testing.T) {
	session := openSession(t)
	if err := session.Close(); err != nil {
		t.Fatal(err)
	}

	_, err := session.Commit(context.Background(), commit.Request{Path: initRepo(t), Message: "m"})
	if !errors.Is(err, git.ErrSessionClosed) {
		t.Fatalf("err = %v, want ErrSessionClosed", err)
	}
}

func TestOpener_InvalidKey(t *testing.T) {
	opener := git.NewOpener(git.Config{}, zaptest.NewLogger(t))

	_, err := opener.Open(credentials.Credentials{PrivateKeyPath: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, git.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}
