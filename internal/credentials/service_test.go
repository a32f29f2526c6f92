package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/apiarycd/svncommit/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, config Config) *Service {
	t.Helper()

	db, err := badger.Open(badgerfx.Config{InMemory: true}.Build().WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(NewRepository(db), config, validator.New(), zaptest.NewLogger(t))
}

func TestService_LookupPrecedence(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Config{})

	entries := []Entry{
		{URLPrefix: "https://svn.example.com", Credentials: Credentials{Username: "global"}},
		{URLPrefix: "https://svn.example.com/repo", Credentials: Credentials{Username: "global-repo"}},
		{Project: "app", URLPrefix: "https://svn.example.com", Credentials: Credentials{Username: "app"}},
	}
	for _, e := range entries {
		if err := svc.Set(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		project string
		url     string
		want    string
	}{
		{"app", "https://svn.example.com/repo/trunk", "app"},
		{"other", "https://svn.example.com/repo/trunk", "global-repo"},
		{"other", "https://svn.example.com/docs", "global"},
		{"", "https://svn.example.com/repository", "global"},
	}

	for _, tt := range tests {
		provider, err := svc.Lookup(ctx, tt.project, tt.url)
		if err != nil {
			t.Fatalf("Lookup(%q, %q) failed: %v", tt.project, tt.url, err)
		}
		if provider.Credentials.Username != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.project, tt.url, provider.Credentials.Username, tt.want)
		}
	}
}

func TestService_LookupDefaultsAndAbsence(t *testing.T) {
	ctx := context.Background()

	withDefaults := newTestService(t, Config{DefaultUsername: "ci", DefaultPassword: "secret"})
	provider, err := withDefaults.Lookup(ctx, "app", "svn://host/repo")
	if err != nil {
		t.Fatal(err)
	}
	if provider.Source != "defaults" || provider.Credentials.Username != "ci" {
		t.Errorf("unexpected provider: %+v", provider)
	}

	without := newTestService(t, Config{})
	_, err = without.Lookup(ctx, "app", "svn://host/repo")
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
}

func TestService_SetRejectsInvalid(t *testing.T) {
	svc := newTestService(t, Config{})

	err := svc.Set(context.Background(), Entry{URLPrefix: " ", Credentials: Credentials{Username: "u"}})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry for empty prefix, got %v", err)
	}

	err = svc.Set(context.Background(), Entry{URLPrefix: "svn://host"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry for empty credentials, got %v", err)
	}
}

func TestService_ListRedactsAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, Config{})

	entry := Entry{Project: "app", URLPrefix: "svn://host", Credentials: Credentials{Username: "u", Password: "p"}}
	if err := svc.Set(ctx, entry); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Credentials.Password != "" || list[0].Credentials.Username != "u" {
		t.Errorf("unexpected list: %+v", list)
	}

	if err := svc.Delete(ctx, "app", "svn://host"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "app", "svn://host"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
