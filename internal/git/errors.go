package git

import "errors"

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrInvalidRepository  = errors.New("invalid repository")
	ErrCommitFailed       = errors.New("failed to commit")
	ErrPushFailed         = errors.New("failed to push")
	ErrAuthentication     = errors.New("invalid authentication")
	ErrSessionClosed      = errors.New("session closed")
)
