package scm

import "regexp"

var macroPattern = regexp.MustCompile(`\$([A-Za-z0-9_]+|\{[A-Za-z0-9_.]+\})`)

// Expand replaces $NAME and ${NAME} references with values from env.
// References to unknown variables are left untouched.
func Expand(s string, env map[string]string) string {
	return macroPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[1:]
		if name[0] == '{' {
			name = name[1 : len(name)-1]
		}

		if value, ok := env[name]; ok {
			return value
		}

		return ref
	})
}
