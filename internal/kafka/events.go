package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types carried on the booking and notifications topics.
const (
	EventBookingCreated   = "booking_created"
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
	EventBookingCancelled = "booking_cancelled"
	EventFareUpdated      = "fare_updated"
)

type BookingEvent struct {
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	PNR           string          `json:"pnr"`
	FlightID      int64           `json:"flight_id"`
	PassengerName string          `json:"passenger_name"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type FareEvent struct {
	EventID        string          `json:"event_id"`
	Type           string          `json:"type"`
	FlightID       int64           `json:"flight_id"`
	Price          decimal.Decimal `json:"price"`
	SeatsAvailable int             `json:"seats_available"`
	DemandLevel    string          `json:"demand_level"`
	RecordedAt     time.Time       `json:"recorded_at"`
}
