package errors

import "errors"

var (
	ErrInvalidEvent = errors.New("event type, user and description are required")
)
