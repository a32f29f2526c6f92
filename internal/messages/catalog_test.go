package messages

import (
	"strings"
	"testing"
)

func TestCatalogIsComplete(t *testing.T) {
	for _, key := range Keys() {
		if _, ok := english[key]; !ok {
			t.Errorf("no message for %s", key)
		}
	}
	if len(Keys()) != len(english) {
		t.Errorf("Keys() lists %d entries, catalog has %d", len(Keys()), len(english))
	}
}

func TestCommitted_NoDigitGrouping(t *testing.T) {
	line := Committed(1234567, "https://svn/repo/trunk")
	if !strings.Contains(line, "1234567") {
		t.Errorf("revision was reformatted: %q", line)
	}
	if !strings.Contains(line, "https://svn/repo/trunk") {
		t.Errorf("location missing: %q", line)
	}
}

func TestLinesAreSingleLine(t *testing.T) {
	lines := []string{
		Committed(42, "loc"),
		NothingToCommit("loc"),
		CommitFailed("boom"),
		CommitFailed("post-commit hook failed (exit code 1) with output:\nmail relay down\n"),
		CommitFailed("svn: warning\r\n\r\nsecond"),
		UnsuccessfulBuild(),
		WrongKind("subversion", "git"),
		NoAuthProvider("loc"),
		BadTemplate("bad"),
		BadTemplate("unexpected token\n  at line 2"),
	}

	for _, line := range lines {
		if line == "" || strings.Contains(line, "\n") {
			t.Errorf("unexpected line %q", line)
		}
		if strings.Contains(line, "%!") {
			t.Errorf("bad format verb in %q", line)
		}
	}
}

func TestCommitFailed_FoldsDetail(t *testing.T) {
	got := CommitFailed("post-commit hook failed (exit code 1) with output:\n\n  mail relay down  \n")
	want := "Commit failed: post-commit hook failed (exit code 1) with output:; mail relay down"
	if got != want {
		t.Errorf("CommitFailed() = %q, want %q", got, want)
	}
}

func TestCommitFailed_KeepsSingleLineDetail(t *testing.T) {
	got := CommitFailed("E155011:  out of date")
	if want := "Commit failed: E155011:  out of date"; got != want {
		t.Errorf("CommitFailed() = %q, want %q", got, want)
	}
}
