package config_test

import (
	"testing"

	"github.com/apiarycd/svncommit/internal/config"
	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/go-playground/validator/v10"
)

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()

	if err := validator.New().Struct(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	kind, err := scm.ParseKind(cfg.SCM.Kind)
	if err != nil || kind != scm.KindSubversion {
		t.Errorf("default kind = %q, %v", kind, err)
	}
}

func TestConfig_WorkerURL(t *testing.T) {
	cfg := config.Default()
	cfg.Worker.URL = "http://worker:3000"

	if err := validator.New().Struct(cfg); err != nil {
		t.Fatalf("worker url rejected: %v", err)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown kind", func(c *config.Config) { c.SCM.Kind = "cvs" }},
		{"no svn binary", func(c *config.Config) { c.SVN.Binary = "" }},
		{"bad worker url", func(c *config.Config) { c.Worker.URL = "not a url" }},
		{"worker url without scheme", func(c *config.Config) { c.Worker.URL = "worker:3000" }},
		{"non-http worker url", func(c *config.Config) { c.Worker.URL = "ftp://worker:3000" }},
		{"bad author email", func(c *config.Config) { c.Git.AuthorEmail = "ci" }},
		{"negative timeout", func(c *config.Config) { c.SVN.Timeout = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(&cfg)

			if err := validator.New().Struct(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
