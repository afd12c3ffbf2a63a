package mockfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlights(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	flights := Flights(now)

	assert.Len(t, flights, len(schedule))
	for _, f := range flights {
		assert.NotEmpty(t, f.FlightNo)
		assert.NotEqual(t, f.Origin, f.Destination)
		assert.True(t, f.DepartureTime.After(now))
		assert.Equal(t, f.ArrivalTime, f.DepartureTime.Add(time.Duration(f.DurationMinutes)*time.Minute))
		assert.True(t, f.BaseFare.IsPositive())
		assert.LessOrEqual(t, f.SeatsAvailable, f.TotalSeats)
	}
}

func TestFlightsCoverUrgencyBuckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var near, mid, week, far bool
	for _, f := range Flights(now) {
		hours := f.DepartureTime.Sub(now).Hours()
		switch {
		case hours <= 24:
			near = true
		case hours <= 72:
			mid = true
		case hours <= 168:
			week = true
		default:
			far = true
		}
	}
	assert.True(t, near, "expected a departure within 24h")
	assert.True(t, mid, "expected a departure within 72h")
	assert.True(t, week, "expected a departure within a week")
	assert.True(t, far, "expected a departure beyond a week")
}
