package comment

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

const (
	// EnvNamespace binds the build environment.
	EnvNamespace = "env"
	// SysNamespace binds the system properties.
	SysNamespace = "sys"

	DefaultTemplate = "Automated commit by ${env['JOB_NAME']} build ${env['BUILD_NUMBER']}"
)

// Template is a compiled comment template. It holds no environment and may
// be executed any number of times.
type Template struct {
	segments []segment
}

type segment struct {
	text    string
	program *vm.Program
	offset  int
}

// Evaluate compiles text and executes it against env and sys, returning the
// trimmed commit message.
func Evaluate(env map[string]string, sys Properties, text string) (string, error) {
	tmpl, err := Compile(text)
	if err != nil {
		return "", err
	}

	return tmpl.Execute(env, sys)
}

// Check reports whether text is a well-formed template.
func Check(text string) error {
	_, err := Compile(text)
	return err
}

// Compile parses text. References are written ${ns['key']}, ${ns["key"]},
// ${ns.key} or $ns.key where ns is env or sys; \$ produces a literal dollar.
func Compile(text string) (*Template, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && (text[i+1] == '$' || text[i+1] == '\\'):
			literal.WriteByte(text[i+1])
			i += 2
		case c == '$':
			body, next, err := scanReference(text, i)
			if err != nil {
				return nil, err
			}

			program, err := compileReference(body, i)
			if err != nil {
				return nil, err
			}

			flush()
			segments = append(segments, segment{program: program, offset: i})
			i = next
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return &Template{segments: segments}, nil
}

// Execute expands the template. Missing keys render as empty strings.
// Neither env nor sys is modified.
func (t *Template) Execute(env map[string]string, sys Properties) (string, error) {
	if env == nil {
		env = map[string]string{}
	}
	if sys == nil {
		sys = Properties{}
	}

	scope := map[string]any{
		EnvNamespace: env,
		SysNamespace: map[string]string(sys),
	}

	var sb strings.Builder
	for _, s := range t.segments {
		if s.program == nil {
			sb.WriteString(s.text)
			continue
		}

		out, err := expr.Run(s.program, scope)
		if err != nil {
			return "", compilationErrorf(s.offset, "%v", err)
		}
		if out != nil {
			sb.WriteString(fmt.Sprint(out))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func scanReference(text string, start int) (string, int, error) {
	i := start + 1
	if i >= len(text) {
		return "", 0, compilationErrorf(start, "dangling $ at end of template")
	}

	if text[i] == '{' {
		var quote byte
		for j := i + 1; j < len(text); j++ {
			c := text[j]
			switch {
			case quote != 0:
				if c == '\\' {
					j++
				} else if c == quote {
					quote = 0
				}
			case c == '\'' || c == '"':
				quote = c
			case c == '}':
				if strings.TrimSpace(text[i+1:j]) == "" {
					return "", 0, compilationErrorf(start, "empty reference")
				}
				return text[i+1 : j], j + 1, nil
			}
		}

		return "", 0, compilationErrorf(start, "unterminated reference")
	}

	if !isIdentStart(text[i]) {
		return "", 0, compilationErrorf(start, "illegal character %q after $", text[i])
	}

	j := i + 1
	for j < len(text) {
		if isIdentPart(text[j]) {
			j++
			continue
		}
		if text[j] == '.' && j+1 < len(text) && isIdentStart(text[j+1]) {
			j++
			continue
		}
		break
	}

	return text[i:j], j, nil
}

var compileScope = map[string]any{
	EnvNamespace: map[string]string{},
	SysNamespace: map[string]string{},
}

func compileReference(body string, offset int) (*vm.Program, error) {
	tree, err := parser.Parse(body)
	if err != nil {
		return nil, compilationErrorf(offset, "%v", err)
	}

	checker := &referenceChecker{}
	ast.Walk(&tree.Node, checker)
	if checker.err != nil {
		return nil, compilationErrorf(offset, "%v", checker.err)
	}

	program, err := expr.Compile(body, expr.Env(compileScope))
	if err != nil {
		return nil, compilationErrorf(offset, "%v", err)
	}

	return program, nil
}

// referenceChecker rejects everything but namespace lookups.
type referenceChecker struct {
	err error
}

func (c *referenceChecker) Visit(node *ast.Node) {
	if c.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value != EnvNamespace && n.Value != SysNamespace {
			c.err = fmt.Errorf("unknown namespace %q", n.Value)
		}
	case *ast.MemberNode, *ast.StringNode, *ast.ChainNode:
	default:
		c.err = fmt.Errorf("only %s and %s references are allowed", EnvNamespace, SysNamespace)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
