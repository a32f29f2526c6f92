package scm

import (
	"path"
	"strings"
)

// Kind identifies a source-control system.
type Kind string

const (
	KindNone       Kind = "none"
	KindSubversion Kind = "subversion"
	KindGit        Kind = "git"
)

// Location is one commit target inside a build workspace.
type Location struct {
	URL      string `json:"url"                 yaml:"url"                 validate:"required"`
	LocalDir string `json:"local_dir,omitempty" yaml:"local_dir,omitempty"`
}

// Dir returns the working-copy directory relative to the workspace root.
// An unset local directory defaults to the last path element of the URL.
func (l Location) Dir() string {
	if l.LocalDir != "" {
		return l.LocalDir
	}

	trimmed := strings.TrimRight(l.URL, "/")
	if i := strings.Index(trimmed, "://"); i >= 0 && !strings.Contains(trimmed[i+3:], "/") {
		return "."
	}

	return path.Base(trimmed)
}

func (l Location) String() string {
	return l.URL + " (" + l.Dir() + ")"
}

// SCM is the source-control configuration of a project.
type SCM interface {
	Kind() Kind
	String() string
}

// RevisionSource exposes the revision file a build recorded at checkout time.
type RevisionSource interface {
	RevisionFile() string
}
