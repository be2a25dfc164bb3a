package errors

import "errors"

var (
	ErrPhotoNotFound         = errors.New("contest photo not found")
	ErrPhotoAlreadySubmitted = errors.New("owner already has an active contest photo")
	ErrInvalidPhotoInput     = errors.New("invalid contest photo input")
	ErrReasonRequired        = errors.New("rejection reason is required")
	ErrForbidden             = errors.New("actor is not allowed to perform this action")
	ErrInvalidTransition     = errors.New("photo status transition not allowed")
)
