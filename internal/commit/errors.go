package commit

import "errors"

var (
	ErrUnsupportedKind = errors.New("unsupported source-control kind")
	ErrCommitFailed    = errors.New("commit failed")
)
