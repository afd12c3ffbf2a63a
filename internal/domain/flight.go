package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Flight struct {
	ID              int64
	FlightNo        string
	AirlineName     string
	Origin          string
	Destination     string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	DurationMinutes int
	BaseFare        decimal.Decimal
	TotalSeats      int
	SeatsAvailable  int
	Demand          *DemandLevel
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FareSnapshot is an append-only record of a computed fare, written by the
// market simulator. Rows are never updated or deleted.
type FareSnapshot struct {
	ID             int64
	FlightID       int64
	RecordedAt     time.Time
	Price          decimal.Decimal
	SeatsAvailable int
	Demand         DemandLevel
}
