package credentials

import "errors"

var (
	ErrNoProvider   = errors.New("no authentication provider")
	ErrNotFound     = errors.New("credentials not found")
	ErrInvalidEntry = errors.New("invalid credentials entry")
)
