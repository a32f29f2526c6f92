package build

import (
	"github.com/apiarycd/svncommit/internal/scm"
)

// Descriptor is the on-disk description of a build handed over by the CI
// host. Root describes the enclosing build when this one is nested.
type Descriptor struct {
	Project      ProjectDescriptor `yaml:"project"`
	Number       int               `yaml:"number"        validate:"gte=0"`
	Result       Result            `yaml:"result"        validate:"omitempty,oneof=success unstable failure not_built aborted"`
	Workspace    string            `yaml:"workspace"`
	Worker       string            `yaml:"worker"        validate:"omitempty,http_url"`
	RevisionFile string            `yaml:"revision_file"`
	Environment  map[string]string `yaml:"environment"`
	Root         *Descriptor       `yaml:"root"`
}

type ProjectDescriptor struct {
	Name string        `yaml:"name" validate:"required"`
	SCM  SCMDescriptor `yaml:"scm"`
}

type SCMDescriptor struct {
	Kind      string         `yaml:"kind"`
	Locations []scm.Location `yaml:"locations" validate:"dive"`
}
