package domain

import (
	"errors"
	"fmt"
)

// Messages surfaced verbatim to API clients.
const (
	MsgTripNotAvailable  = "Trip is not available"
	MsgNotEnoughSeats    = "Not enough seats available"
	MsgNotCancellable    = "Only upcoming bookings can be cancelled"
	MsgNotBookingOwner   = "Only the passenger can cancel this booking"
	MsgPaymentNotAllowed = "Payment method not accepted for this trip"
	MsgFullCarNotAllowed = "Full car booking is not allowed for this trip"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type PermissionError struct {
	Msg string
	Err error
}

func (e PermissionError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "permission denied"
}

func (e PermissionError) Unwrap() error { return e.Err }

// CapacityError is raised by seat inventory when a reservation cannot be
// granted. It reads as a ConflictError to callers.
type CapacityError struct {
	Requested int
	Available int
}

func (e CapacityError) Error() string { return MsgNotEnoughSeats }

func (e CapacityError) Unwrap() error { return ConflictError{Msg: MsgNotEnoughSeats} }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsPermission(err error) bool {
	var target PermissionError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
