package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Service struct {
	entries *Repository
	config  Config

	validator *validator.Validate
	logger    *zap.Logger
}

func NewService(entries *Repository, config Config, validator *validator.Validate, logger *zap.Logger) *Service {
	return &Service{
		entries: entries,
		config:  config,

		validator: validator,
		logger:    logger,
	}
}

// Lookup resolves the provider for a location of a project. Entries of the
// project win over global ones, longer URL prefixes over shorter ones, and
// configured defaults are used last. ErrNoProvider is returned when nothing
// applies.
func (s *Service) Lookup(ctx context.Context, project, repositoryURL string) (*Provider, error) {
	scoped, err := s.entries.ListByProject(ctx, project)
	if err != nil {
		return nil, err
	}

	global := []Entry{}
	if project != "" {
		global, err = s.entries.ListByProject(ctx, "")
		if err != nil {
			return nil, err
		}
	}

	for _, candidates := range [][]Entry{scoped, global} {
		matching := lo.Filter(candidates, func(e Entry, _ int) bool {
			return matchesPrefix(repositoryURL, e.URLPrefix)
		})
		if len(matching) == 0 {
			continue
		}

		best := lo.MaxBy(matching, func(a, b Entry) bool {
			return len(a.URLPrefix) > len(b.URLPrefix)
		})

		s.logger.Debug("credentials resolved",
			zap.String("project", project),
			zap.String("url", repositoryURL),
			zap.String("prefix", best.URLPrefix))

		return &Provider{
			Source:      fmt.Sprintf("stored %q for %s", best.Project, best.URLPrefix),
			Credentials: best.Credentials,
		}, nil
	}

	if defaults := s.config.defaults(); !defaults.IsZero() {
		return &Provider{Source: "defaults", Credentials: defaults}, nil
	}

	s.logger.Warn("no credentials for location",
		zap.String("project", project),
		zap.String("url", repositoryURL))

	return nil, fmt.Errorf("%w: %s", ErrNoProvider, repositoryURL)
}

// Set validates and stores an entry.
func (s *Service) Set(ctx context.Context, entry Entry) error {
	entry.URLPrefix = strings.TrimSpace(entry.URLPrefix)
	if err := s.validator.Struct(entry); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if entry.Credentials.IsZero() {
		return fmt.Errorf("%w: no credential material", ErrInvalidEntry)
	}

	if err := s.entries.Put(ctx, entry); err != nil {
		return err
	}

	s.logger.Info("credentials stored",
		zap.String("project", entry.Project),
		zap.String("prefix", entry.URLPrefix))

	return nil
}

// Delete removes a stored entry.
func (s *Service) Delete(ctx context.Context, project, urlPrefix string) error {
	return s.entries.Delete(ctx, project, urlPrefix)
}

// List returns all entries with secrets removed.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(entries, func(e Entry, _ int) Entry {
		e.Credentials = e.Credentials.Redacted()
		return e
	}), nil
}

func matchesPrefix(repositoryURL, urlPrefix string) bool {
	if !strings.HasPrefix(repositoryURL, urlPrefix) {
		return false
	}

	return len(repositoryURL) == len(urlPrefix) ||
		strings.HasSuffix(urlPrefix, "/") ||
		repositoryURL[len(urlPrefix)] == '/'
}
