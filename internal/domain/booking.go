package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed     BookingStatus = "CONFIRMED"
	BookingStatusPaid          BookingStatus = "PAID"
	BookingStatusPaymentFailed BookingStatus = "PAYMENT_FAILED"
	BookingStatusCancelled     BookingStatus = "CANCELLED"
)

type Booking struct {
	ID            int64
	PNR           string
	FlightID      int64
	PassengerName string
	SeatNo        string
	// Price is locked in at creation time and never recomputed.
	Price     decimal.Decimal
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
