package build

import (
	"maps"
	"strconv"

	"github.com/apiarycd/svncommit/internal/scm"
)

type project struct {
	name string
	scm  *scm.Configuration
	root *project
}

func (p *project) Name() string {
	return p.name
}

func (p *project) RootProject() Project {
	if p.root == nil {
		return p
	}
	return p.root.RootProject()
}

func (p *project) SCM() SCM {
	return p.scm
}

type hostedBuild struct {
	number       int
	result       Result
	project      *project
	root         *hostedBuild
	workspace    Workspace
	revisionFile string
	environment  map[string]string
}

func (b *hostedBuild) Number() int {
	return b.number
}

func (b *hostedBuild) Result() Result {
	return b.result
}

func (b *hostedBuild) Project() Project {
	return b.project
}

func (b *hostedBuild) RootBuild() Build {
	if b.root == nil {
		return b
	}
	return b.root.RootBuild()
}

// Environment returns a fresh snapshot with the standard build variables
// filled in where the descriptor does not set them.
func (b *hostedBuild) Environment() map[string]string {
	env := maps.Clone(b.environment)
	if env == nil {
		env = make(map[string]string, 4)
	}

	number := strconv.Itoa(b.number)
	defaults := map[string]string{
		"JOB_NAME":     b.project.name,
		"BUILD_NUMBER": number,
		"BUILD_TAG":    "svncommit-" + b.project.name + "-" + number,
	}
	if b.workspace.Root != "" {
		defaults["WORKSPACE"] = b.workspace.Root
	}

	for k, v := range defaults {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}

	return env
}

func (b *hostedBuild) Workspace() Workspace {
	return b.workspace
}

func (b *hostedBuild) RevisionFile() string {
	return b.revisionFile
}
