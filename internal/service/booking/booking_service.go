package booking

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/kafka"
	"github.com/arunkx/skyfare/internal/pnr"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	PayBooking(ctx context.Context, pnr string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, pnr string) (*domain.Booking, error)
	GetBooking(ctx context.Context, pnr string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	FlightID      int64  `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
	SeatNo        string `json:"seat_no"`
}

type BookingService struct {
	bookings repository.BookingRepository
	engine   *pricing.Engine
	log      zerolog.Logger

	producer           Producer
	bookingTopic       string
	notificationsTopic string

	newPNR  func() (string, error)
	payRoll func() bool
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithPaymentRoll replaces the simulated payment gateway outcome.
func WithPaymentRoll(roll func() bool) BookingServiceOption {
	return func(s *BookingService) {
		s.payRoll = roll
	}
}

func WithPNRFunc(newPNR func() (string, error)) BookingServiceOption {
	return func(s *BookingService) {
		s.newPNR = newPNR
	}
}

func NewBookingService(bookings repository.BookingRepository, engine *pricing.Engine, log zerolog.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		engine:   engine,
		log:      log,
		newPNR:   pnr.New,
		payRoll:  func() bool { return rand.Intn(2) == 0 },
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking consumes one seat and locks in the fare quoted against the
// post-decrement seat count. The seat check, decrement and booking insert
// run inside one locked transaction; a persistence failure rolls all of it
// back and surfaces only ErrBookingFailed.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerName == "" {
		return nil, errors.New("passenger name is required")
	}

	reference, err := s.newPNR()
	if err != nil {
		s.log.Error().Err(err).Msg("generate pnr")
		return nil, domain.ErrBookingFailed
	}

	booking := &domain.Booking{
		PNR:           reference,
		FlightID:      input.FlightID,
		PassengerName: input.PassengerName,
		SeatNo:        input.SeatNo,
	}

	err = s.bookings.Create(ctx, booking, func(f domain.Flight) decimal.Decimal {
		return s.engine.Price(pricing.Quote{
			BaseFare:       f.BaseFare,
			SeatsAvailable: f.SeatsAvailable,
			TotalSeats:     f.TotalSeats,
			DepartureTime:  f.DepartureTime,
			Carrier:        f.AirlineName,
		})
	})
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrNoSeatsAvailable):
		return nil, err
	case err != nil:
		s.log.Error().Err(err).Int64("flight_id", input.FlightID).Msg("create booking")
		return nil, domain.ErrBookingFailed
	}

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

// PayBooking simulates a payment gateway with a coin flip and overwrites the
// booking status with the outcome. Seats are untouched, and repeated calls
// re-roll even after a terminal status.
func (s *BookingService) PayBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	if _, err := s.bookings.GetByPNR(ctx, reference); err != nil {
		return nil, err
	}

	status := domain.BookingStatusPaymentFailed
	eventType := kafka.EventPaymentFailed
	if s.payRoll() {
		status = domain.BookingStatusPaid
		eventType = kafka.EventPaymentSucceeded
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventType, updated)
	return updated, nil
}

// CancelBooking is idempotent: a second cancel returns success without
// touching the seat count again.
func (s *BookingService) CancelBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	current, err := s.bookings.GetByPNR(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	cancelled, err := s.bookings.Cancel(ctx, reference)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCancelled, cancelled)
	return cancelled, nil
}

func (s *BookingService) GetBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, reference)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		PNR:           booking.PNR,
		FlightID:      booking.FlightID,
		PassengerName: booking.PassengerName,
		Price:         booking.Price,
		Status:        string(booking.Status),
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		s.log.Warn().Err(err).Str("pnr", booking.PNR).Str("type", eventType).Msg("publish booking event")
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			s.log.Warn().Err(err).Str("pnr", booking.PNR).Str("type", eventType).Msg("publish notification event")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
