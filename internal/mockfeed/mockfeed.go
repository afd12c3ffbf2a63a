// Package mockfeed stands in for an external airline schedule provider.
package mockfeed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
)

const Provider = "SkyFare Mock Feed"

type scheduleRow struct {
	flightNo  string
	airline   string
	origin    string
	dest      string
	departIn  time.Duration
	duration  time.Duration
	baseFare  string
	total     int
	available int
}

var schedule = []scheduleRow{
	{"FB401", "AirIndiaExpress", "Kolkata", "Chennai", 18 * time.Hour, 130 * time.Minute, "6425.00", 180, 100},
	{"FB402", "AirIndiaExpress", "Hyderabad", "Mumbai", 30 * time.Hour, 155 * time.Minute, "6670.00", 120, 67},
	{"FB403", "IndiGo", "Mumbai", "Delhi", 48 * time.Hour, 125 * time.Minute, "4999.00", 186, 150},
	{"FB404", "Vistara", "Delhi", "Mumbai", 72 * time.Hour, 120 * time.Minute, "7850.00", 158, 40},
	{"FB405", "SpiceJet", "Bengaluru", "Goa", 96 * time.Hour, 75 * time.Minute, "3200.00", 189, 180},
	{"FB406", "AirIndia", "Chennai", "Kolkata", 120 * time.Hour, 135 * time.Minute, "6100.00", 256, 90},
	{"FB407", "Emirates", "Mumbai", "Dubai", 200 * time.Hour, 195 * time.Minute, "18500.00", 354, 310},
	{"FB408", "AirAsia", "Delhi", "Goa", 240 * time.Hour, 150 * time.Minute, "4100.00", 180, 25},
}

// Flights returns the mock schedule with departures laid out relative to now,
// so seeded data always has flights across every urgency bucket.
func Flights(now time.Time) []domain.Flight {
	flights := make([]domain.Flight, 0, len(schedule))
	for _, row := range schedule {
		depart := now.Add(row.departIn).Truncate(time.Minute)
		flights = append(flights, domain.Flight{
			FlightNo:        row.flightNo,
			AirlineName:     row.airline,
			Origin:          row.origin,
			Destination:     row.dest,
			DepartureTime:   depart,
			ArrivalTime:     depart.Add(row.duration),
			DurationMinutes: int(row.duration.Minutes()),
			BaseFare:        decimal.RequireFromString(row.baseFare),
			TotalSeats:      row.total,
			SeatsAvailable:  row.available,
		})
	}
	return flights
}
