package commits_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apiarycd/svncommit/internal/auth"
	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/apiarycd/svncommit/internal/server/handlers/commits"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

type session struct {
	paths []string
}

func (s *session) Commit(_ context.Context, req commit.Request) (commit.Info, error) {
	s.paths = append(s.paths, req.Path)
	return commit.Info{NewRevision: 77}, nil
}

func (s *session) Close() error { return nil }

type opener struct {
	session *session
}

func (o opener) Kind() scm.Kind { return scm.KindSubversion }

func (o opener) Open(credentials.Credentials) (commit.Session, error) { return o.session, nil }

func newApp(t *testing.T, secret string) (*fiber.App, *session, *auth.Service) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	s := &session{}
	executor := commit.NewExecutor([]commit.Opener{opener{session: s}}, nil, logger)
	tokens := auth.NewService(auth.Config{SecretKey: []byte(secret)}, logger)

	app := fiber.New()
	commits.NewHandler(executor, tokens, validator.New(), logger).Register(app.Group("/api/v1"))

	return app, s, tokens
}

func post(t *testing.T, app *fiber.App, body any, token string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/commits", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

var request = remote.Request{
	Root: "/var/builds/app/42",
	Task: commit.Task{
		Kind:     scm.KindSubversion,
		Location: scm.Location{URL: "https://svn.example.com/repo/trunk"},
		Message:  "Automated commit",
	},
}

func TestHandler_Post(t *testing.T) {
	app, s, _ := newApp(t, "")

	resp := post(t, app, request, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var reply remote.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}

	want := remote.Reply{
		Outcome: commit.Outcome{Location: request.Task.Location, Status: commit.StatusCommitted, Revision: 77},
		Log:     []string{"Committed revision 77 of https://svn.example.com/repo/trunk"},
	}
	if diff := cmp.Diff(want, reply); diff != "" {
		t.Errorf("reply mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/var/builds/app/42/trunk"}, s.paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_PostInvalid(t *testing.T) {
	app, s, _ := newApp(t, "")

	relative := request
	relative.Root = "builds/42"

	noURL := request
	noURL.Task.Location.URL = ""

	badKind := request
	badKind.Task.Kind = "cvs"

	for name, body := range map[string]remote.Request{"relative root": relative, "no url": noURL, "bad kind": badKind} {
		t.Run(name, func(t *testing.T) {
			if resp := post(t, app, body, ""); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
	if len(s.paths) != 0 {
		t.Errorf("no commit expected, got %v", s.paths)
	}
}

func TestHandler_PostAuth(t *testing.T) {
	app, _, tokens := newApp(t, "s3cret")

	if resp := post(t, app, request, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("without token: status = %d, want 401", resp.StatusCode)
	}

	operator, err := tokens.Issue("alice", auth.RoleOperator)
	if err != nil {
		t.Fatal(err)
	}
	if resp := post(t, app, request, operator); resp.StatusCode != http.StatusForbidden {
		t.Errorf("operator token: status = %d, want 403", resp.StatusCode)
	}

	publisher, err := tokens.Issue("ci", auth.RolePublisher)
	if err != nil {
		t.Fatal(err)
	}
	if resp := post(t, app, request, publisher); resp.StatusCode != http.StatusOK {
		t.Errorf("publisher token: status = %d, want 200", resp.StatusCode)
	}
}
