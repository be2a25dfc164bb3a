package errors

import "errors"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrUnknownRole  = errors.New("token carries an unknown role")
)
