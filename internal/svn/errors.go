package svn

import "errors"

var (
	ErrCommandFailed = errors.New("svn command failed")
	ErrTimeout       = errors.New("svn command timeout")
	ErrSessionClosed = errors.New("session closed")
)
