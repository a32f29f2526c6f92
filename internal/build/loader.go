package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apiarycd/svncommit/internal/remote"
	"github.com/apiarycd/svncommit/internal/scm"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// Loader turns build descriptors into builds bound to a workspace channel.
type Loader struct {
	router *remote.Router

	validator *validator.Validate
	logger    *zap.Logger
}

func NewLoader(router *remote.Router, validator *validator.Validate, logger *zap.Logger) *Loader {
	return &Loader{
		router: router,

		validator: validator,
		logger:    logger,
	}
}

// Load reads a YAML or JSON descriptor from path.
func (l *Loader) Load(path string) (Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build descriptor: %w", err)
	}

	return l.Parse(data, filepath.Dir(path))
}

// Parse decodes a descriptor. Relative workspace and revision file paths are
// resolved against baseDir.
func (l *Loader) Parse(data []byte, baseDir string) (Build, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	b, err := l.fromDescriptor(&d, baseDir, 0)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("build loaded",
		zap.String("project", b.project.name),
		zap.Int("number", b.number),
		zap.String("result", string(b.result)))

	return b, nil
}

const maxNesting = 8

func (l *Loader) fromDescriptor(d *Descriptor, baseDir string, depth int) (*hostedBuild, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("%w: root builds nested deeper than %d", ErrInvalidDescriptor, maxNesting)
	}
	if err := l.validator.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	kind, err := scm.ParseKind(d.Project.SCM.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	b := &hostedBuild{
		number: d.Number,
		result: d.Result,
		project: &project{
			name: d.Project.Name,
			scm:  scm.New(kind, d.Project.SCM.Locations),
		},
		workspace: Workspace{
			Root:    resolve(baseDir, d.Workspace),
			Channel: l.router.Channel(d.Worker),
		},
		revisionFile: resolve(baseDir, d.RevisionFile),
		environment:  d.Environment,
	}

	if d.Root != nil {
		root, err := l.fromDescriptor(d.Root, baseDir, depth+1)
		if err != nil {
			return nil, err
		}
		b.root = root
		b.project.root = root.project
	}

	return b, nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
