package auth

import "errors"

var (
	ErrDisabled     = errors.New("authentication disabled")
	ErrTokenMissing = errors.New("missing token")
	ErrTokenInvalid = errors.New("invalid token")
)
