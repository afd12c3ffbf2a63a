package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arunkx/skyfare/internal/kafka"
)

// Sender is a stand-in for a real mail gateway; it only logs what it would
// have sent.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info().
		Str("type", event.Type).
		Str("pnr", event.PNR).
		Str("passenger", event.PassengerName).
		Int64("flight_id", event.FlightID).
		Str("status", event.Status).
		Msg("sending booking notification")
	return nil
}
