package comment

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// Properties are process-wide values exposed to templates under the sys
// namespace.
type Properties map[string]string

// PropertySource yields the current system properties. It is called once per
// evaluation so templates always see up-to-date values.
type PropertySource func() Properties

// SystemProperties snapshots the process properties merged with extra.
// Keys of extra override the built-in ones.
func SystemProperties(extra map[string]string) Properties {
	props := Properties{
		"os.name":        runtime.GOOS,
		"os.arch":        runtime.GOARCH,
		"go.version":     runtime.Version(),
		"file.separator": string(filepath.Separator),
		"path.separator": string(filepath.ListSeparator),
		"line.separator": "\n",
	}

	if wd, err := os.Getwd(); err == nil {
		props["user.dir"] = wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		props["user.home"] = home
	}
	if u, err := user.Current(); err == nil {
		props["user.name"] = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		props["host.name"] = strings.ToLower(host)
	}

	for k, v := range extra {
		props[k] = v
	}

	return props
}

// Static returns a PropertySource that always yields props.
func Static(props Properties) PropertySource {
	return func() Properties { return props }
}
