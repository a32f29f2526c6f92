package commit_test

import (
	"errors"
	"testing"

	"github.com/apiarycd/svncommit/internal/commit"
	"github.com/apiarycd/svncommit/internal/scm"
)

func TestReport(t *testing.T) {
	ok := commit.Outcome{Location: scm.Location{URL: "u1"}, Status: commit.StatusCommitted, Revision: 5}
	noop := commit.Outcome{Location: scm.Location{URL: "u2"}, Status: commit.StatusNothingToCommit, Revision: -1}
	bad := commit.Outcome{Location: scm.Location{URL: "u3"}, Status: commit.StatusFailed, Detail: "locked"}

	var empty commit.Report
	if !empty.OK() || empty.Err() != nil {
		t.Fatal("empty report must succeed")
	}

	var report commit.Report
	report.Add(ok)
	report.Add(noop)
	if !report.OK() {
		t.Fatal("report with only successes must be OK")
	}

	report.Add(bad)
	report.Add(ok)

	if report.OK() {
		t.Error("one failure must fail the report")
	}
	if len(report.Outcomes) != 4 {
		t.Errorf("len = %d, want 4", len(report.Outcomes))
	}

	err := report.Err()
	if !errors.Is(err, commit.ErrCommitFailed) {
		t.Errorf("Err() = %v, want ErrCommitFailed", err)
	}
}
