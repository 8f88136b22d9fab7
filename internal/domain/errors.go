package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrJobNotFound     = errors.New("job not found")
	ErrUnknownModel    = errors.New("unknown tool/model pairing")
)
