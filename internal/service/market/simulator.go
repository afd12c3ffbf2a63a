// Package market perturbs flight state on a timer to generate fare history.
package market

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/kafka"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
)

const (
	DefaultInterval   = 60 * time.Second
	DefaultSampleSize = 5
	DefaultSeatDelta  = 5
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Simulator struct {
	repo   repository.MarketRepository
	engine *pricing.Engine
	log    zerolog.Logger

	interval   time.Duration
	sampleSize int
	seatDelta  int

	producer  Producer
	fareTopic string

	rng  *rand.Rand
	now  func() time.Time
	busy sync.Mutex
}

type SimulatorOption func(*Simulator)

func WithInterval(interval time.Duration) SimulatorOption {
	return func(s *Simulator) { s.interval = interval }
}

func WithSampleSize(n int) SimulatorOption {
	return func(s *Simulator) { s.sampleSize = n }
}

func WithSeatDelta(n int) SimulatorOption {
	return func(s *Simulator) { s.seatDelta = n }
}

func WithProducer(producer Producer, fareTopic string) SimulatorOption {
	return func(s *Simulator) {
		s.producer = producer
		s.fareTopic = fareTopic
	}
}

func WithRand(rng *rand.Rand) SimulatorOption {
	return func(s *Simulator) { s.rng = rng }
}

func WithNow(now func() time.Time) SimulatorOption {
	return func(s *Simulator) { s.now = now }
}

func NewSimulator(repo repository.MarketRepository, engine *pricing.Engine, log zerolog.Logger, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		repo:       repo,
		engine:     engine,
		log:        log,
		interval:   DefaultInterval,
		sampleSize: DefaultSampleSize,
		seatDelta:  DefaultSeatDelta,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks until ctx is done. A failed tick is logged and swallowed; the
// loop never stops because of one.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("market simulator started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("market simulator stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error().Err(err).Msg("market tick failed")
			}
		}
	}
}

// Tick perturbs a random sample of flights and records a fare snapshot for
// each, all in one transaction. If the previous tick is somehow still
// running, this one is skipped rather than piled on top.
func (s *Simulator) Tick(ctx context.Context) error {
	if !s.busy.TryLock() {
		s.log.Debug().Msg("previous tick still running, skipping")
		return nil
	}
	defer s.busy.Unlock()

	ids, err := s.repo.FlightIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	sample := s.sampleIDs(ids)
	snapshots, err := s.repo.ApplyTick(ctx, sample, s.perturb)
	if err != nil {
		return err
	}

	s.publish(ctx, snapshots)
	return nil
}

func (s *Simulator) perturb(f *domain.Flight) domain.FareSnapshot {
	delta := s.rng.Intn(2*s.seatDelta+1) - s.seatDelta
	seats := f.SeatsAvailable + delta
	if seats < 0 {
		seats = 0
	}
	if seats > f.TotalSeats {
		seats = f.TotalSeats
	}
	f.SeatsAvailable = seats

	demand := domain.DemandLevels[s.rng.Intn(len(domain.DemandLevels))]
	f.Demand = &demand

	price := s.engine.Price(pricing.Quote{
		BaseFare:       f.BaseFare,
		SeatsAvailable: f.SeatsAvailable,
		TotalSeats:     f.TotalSeats,
		DepartureTime:  f.DepartureTime,
		Carrier:        f.AirlineName,
		Demand:         &demand,
	})

	return domain.FareSnapshot{
		FlightID:       f.ID,
		RecordedAt:     s.now().UTC(),
		Price:          price,
		SeatsAvailable: f.SeatsAvailable,
		Demand:         demand,
	}
}

func (s *Simulator) sampleIDs(ids []int64) []int64 {
	n := s.sampleSize
	if n > len(ids) {
		n = len(ids)
	}
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids[:n]
}

func (s *Simulator) publish(ctx context.Context, snapshots []domain.FareSnapshot) {
	if s.producer == nil || s.fareTopic == "" {
		return
	}
	for _, snap := range snapshots {
		event := kafka.FareEvent{
			EventID:        uuid.NewString(),
			Type:           kafka.EventFareUpdated,
			FlightID:       snap.FlightID,
			Price:          snap.Price,
			SeatsAvailable: snap.SeatsAvailable,
			DemandLevel:    string(snap.Demand),
			RecordedAt:     snap.RecordedAt,
		}
		if err := s.producer.Publish(ctx, s.fareTopic, strconv.FormatInt(snap.FlightID, 10), event); err != nil {
			s.log.Warn().Err(err).Int64("flight_id", snap.FlightID).Msg("publish fare event")
		}
	}
}
