package svn

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// Command is a single invocation of an external binary.
type Command struct {
	Dir   string
	Env   []string
	Name  string
	Args  []string
	Stdin string
}

// CommandRunner executes commands and returns their combined output.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

type ExecRunner struct{}

func NewExecRunner() CommandRunner {
	return ExecRunner{}
}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	return cmd.CombinedOutput()
}
