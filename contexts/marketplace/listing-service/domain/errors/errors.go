package errors

import "errors"

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidListingInput = errors.New("invalid listing input")
	ErrPriceRequired       = errors.New("for-sale listings require a price greater than zero")
	ErrPriceNotAllowed     = errors.New("donation listings must not carry a price")
	ErrReasonRequired      = errors.New("rejection requires a non-empty reason")
	ErrForbidden           = errors.New("caller is not allowed to perform this action")
	ErrInvalidTransition   = errors.New("transition not permitted from current status")
	ErrAlreadyReserved     = errors.New("listing is already reserved")
	ErrSelfReservation     = errors.New("sellers cannot reserve their own listing")
	ErrListingReserved     = errors.New("listing is reserved and cannot be deleted")
)
