package svn_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/apiarycd/svncommit/internal/svn"
)

func TestExecRunner_Stdin(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	out, err := svn.NewExecRunner().Run(context.Background(), svn.Command{
		Dir:   t.TempDir(),
		Name:  "cat",
		Stdin: "secret\n",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "secret\n" {
		t.Errorf("output = %q, want stdin echoed", out)
	}
}
