package domain

import (
	"errors"
	"fmt"
)

// Expected business outcomes. Protocols resolve these by rolling back the
// active unit of work and mapping them to the operation's user-facing message.
var (
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrAlreadyLoggedIn     = errors.New("user already logged in")
	ErrAuthFailed          = errors.New("authentication failed")
	ErrInvalidItinerary    = errors.New("no such itinerary")
	ErrDateConflict        = errors.New("reservation exists on the same day")
	ErrCapacityFull        = errors.New("flight is fully booked")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("reservation belongs to another user")
	ErrUserExists          = errors.New("username already taken")
	ErrUserNotFound        = errors.New("user not found")
	ErrNegativeBalance     = errors.New("initial balance must be non-negative")
)

// InsufficientFundsError carries the amounts needed to render the payment
// rejection message.
type InsufficientFundsError struct {
	Balance int64
	Cost    int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("balance %d is below itinerary cost %d", e.Balance, e.Cost)
}
