package errors

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid moderation request")
	ErrUnknownResource       = errors.New("unknown moderation resource type")
	ErrForbidden             = errors.New("actor is not allowed to perform this action")
	ErrDependencyUnavailable = errors.New("moderation dependency unavailable")
)
