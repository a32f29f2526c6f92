package scm

import (
	"fmt"
	"strconv"
	"strings"
)

// Configuration is the source-control setup of a root project: its kind and
// the unresolved repository locations it checks out.
type Configuration struct {
	kind      Kind
	locations []Location
}

// New creates a configuration of the given kind.
func New(kind Kind, locations []Location) *Configuration {
	if kind == "" {
		kind = KindNone
	}

	return &Configuration{
		kind:      kind,
		locations: append([]Location(nil), locations...),
	}
}

// ParseKind validates a configured kind name.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case KindSubversion, KindGit, KindNone:
		return kind, nil
	case "svn":
		return KindSubversion, nil
	case "":
		return KindNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Kind implements SCM.
func (c *Configuration) Kind() Kind {
	return c.kind
}

// String implements SCM.
func (c *Configuration) String() string {
	if len(c.locations) == 0 {
		return string(c.kind)
	}

	urls := make([]string, len(c.locations))
	for i, l := range c.locations {
		urls[i] = l.URL
	}

	return string(c.kind) + "[" + strings.Join(urls, ", ") + "]"
}

// Locations returns the configured locations with env substituted into both
// the repository URL and the local directory. Order is preserved.
func (c *Configuration) Locations(env map[string]string) []Location {
	resolved := make([]Location, 0, len(c.locations))
	for _, l := range c.locations {
		resolved = append(resolved, Location{
			URL:      Expand(l.URL, env),
			LocalDir: Expand(l.LocalDir, env),
		})
	}

	return resolved
}

// BuildEnvVars adds the repository URLs and, when recorded, their checked
// out revisions to env. A single location is exposed as SVN_URL/SVN_REVISION,
// several as SVN_URL_n/SVN_REVISION_n starting at 1.
func (c *Configuration) BuildEnvVars(src RevisionSource, env map[string]string) error {
	if c.kind != KindSubversion || len(c.locations) == 0 {
		return nil
	}

	var file string
	if src != nil {
		file = src.RevisionFile()
	}

	revisions, err := ParseRevisionFile(file)
	if err != nil {
		return err
	}

	locations := c.Locations(env)
	if len(locations) == 1 {
		setEnv(env, "", locations[0].URL, revisions)
		return nil
	}

	for i, l := range locations {
		setEnv(env, "_"+strconv.Itoa(i+1), l.URL, revisions)
	}

	return nil
}

func setEnv(env map[string]string, suffix, url string, revisions map[string]int64) {
	env["SVN_URL"+suffix] = url
	if rev, ok := revisions[strings.TrimRight(url, "/")]; ok {
		env["SVN_REVISION"+suffix] = strconv.FormatInt(rev, 10)
	}
}

var _ SCM = (*Configuration)(nil)
