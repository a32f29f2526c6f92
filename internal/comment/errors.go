package comment

import (
	"errors"
	"fmt"
)

// ErrTemplateCompilation matches every CompilationError via errors.Is.
var ErrTemplateCompilation = errors.New("malformed comment template")

// CompilationError reports a comment template that is not well formed.
type CompilationError struct {
	Offset int
	Reason string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrTemplateCompilation, e.Offset, e.Reason)
}

func (e *CompilationError) Is(target error) bool {
	return target == ErrTemplateCompilation
}

func compilationErrorf(offset int, format string, args ...any) *CompilationError {
	return &CompilationError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
