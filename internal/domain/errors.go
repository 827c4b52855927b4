package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoVersions    = errors.New("no comparable versions")
	ErrStaleResponse = errors.New("stale response")
)
