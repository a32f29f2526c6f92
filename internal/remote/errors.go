package remote

import "errors"

var (
	ErrChannel       = errors.New("worker channel failure")
	ErrWorkerRefused = errors.New("worker refused request")
)
