package build

import "errors"

var (
	ErrInvalidDescriptor = errors.New("invalid build descriptor")
	ErrNoChannel         = errors.New("workspace has no channel")
)
