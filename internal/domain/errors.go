package domain

import "errors"

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrSameCity         = errors.New("origin and destination must be different")
	ErrNoFlightsFound   = errors.New("no flights found")
	ErrNoFareHistory    = errors.New("no fare history recorded for this flight")

	// ErrBookingFailed hides the underlying persistence failure from callers.
	ErrBookingFailed = errors.New("booking failed")
)
