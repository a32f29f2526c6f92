package scm

import "errors"

var ErrUnknownKind = errors.New("unknown scm kind")
