package commit

import (
	"context"

	"github.com/apiarycd/svncommit/internal/credentials"
	"github.com/apiarycd/svncommit/internal/messages"
	"github.com/apiarycd/svncommit/internal/scm"
)

// NoRevision is reported by a session when the commit created no revision.
const NoRevision int64 = -1

// Depth of a commit below the working-copy path.
type Depth string

const (
	DepthEmpty    Depth = "empty"
	DepthFiles    Depth = "files"
	DepthInfinity Depth = "infinity"
)

// Task is the unit of work shipped to whatever process owns the workspace.
// It carries only plain values.
type Task struct {
	Kind        scm.Kind                `json:"kind"        validate:"required,oneof=subversion git"`
	Location    scm.Location            `json:"location"    validate:"required"`
	Message     string                  `json:"message"`
	Credentials credentials.Credentials `json:"credentials"`
}

// Request is a single recursive commit of one working-copy path.
type Request struct {
	Path               string
	Message            string
	Depth              Depth
	KeepLocks          bool
	RevisionProperties map[string]string
	Changelists        []string
	KeepChangelists    bool
	Force              bool
}

// Info is what a session reports for a completed commit call. ErrorMessage
// is set when the server accepted the call but reported a problem.
type Info struct {
	NewRevision  int64
	ErrorMessage string
}

// Session is a disposable client bound to one set of credentials.
type Session interface {
	Commit(ctx context.Context, req Request) (Info, error)
	Close() error
}

// Opener creates sessions for one source-control kind.
type Opener interface {
	Kind() scm.Kind
	Open(creds credentials.Credentials) (Session, error)
}

// Status classifies an Outcome.
type Status string

const (
	StatusCommitted       Status = "committed"
	StatusNothingToCommit Status = "nothing_to_commit"
	StatusFailed          Status = "failed"
)

// Outcome is the classified result of one commit task.
type Outcome struct {
	Location scm.Location `json:"location"`
	Status   Status       `json:"status"`
	Revision int64        `json:"revision,omitempty"`
	Detail   string       `json:"detail,omitempty"`
}

// OK reports whether the outcome counts as success.
func (o Outcome) OK() bool {
	return o.Status == StatusCommitted || o.Status == StatusNothingToCommit
}

// Line renders the build-log line for the outcome.
func (o Outcome) Line() string {
	switch o.Status {
	case StatusCommitted:
		return messages.Committed(o.Revision, o.Location.URL)
	case StatusNothingToCommit:
		return messages.NothingToCommit(o.Location.URL)
	default:
		return messages.CommitFailed(o.Detail)
	}
}

func committed(l scm.Location, revision int64) Outcome {
	return Outcome{Location: l, Status: StatusCommitted, Revision: revision}
}

func nothingToCommit(l scm.Location) Outcome {
	return Outcome{Location: l, Status: StatusNothingToCommit, Revision: NoRevision}
}

func failed(l scm.Location, detail string) Outcome {
	return Outcome{Location: l, Status: StatusFailed, Detail: detail}
}
