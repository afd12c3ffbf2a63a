package market

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func testEngine() *pricing.Engine {
	return pricing.NewEngine(pricing.DefaultConfig(), nil, pricing.WithNow(func() time.Time { return testNow }))
}

// fakeMarketStore applies ticks to in-memory flights with the same
// all-or-nothing semantics as the Postgres implementation.
type fakeMarketStore struct {
	flights map[int64]*domain.Flight
	history []domain.FareSnapshot
	failing bool
}

func newFakeMarketStore(flights ...domain.Flight) *fakeMarketStore {
	s := &fakeMarketStore{flights: make(map[int64]*domain.Flight)}
	for i := range flights {
		f := flights[i]
		s.flights[f.ID] = &f
	}
	return s
}

func (s *fakeMarketStore) FlightIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(s.flights))
	for id := range s.flights {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeMarketStore) ApplyTick(ctx context.Context, flightIDs []int64, perturb repository.PerturbFunc) ([]domain.FareSnapshot, error) {
	if s.failing {
		return nil, errors.New("db down")
	}
	staged := make(map[int64]domain.Flight, len(flightIDs))
	snapshots := make([]domain.FareSnapshot, 0, len(flightIDs))
	for _, id := range flightIDs {
		f := *s.flights[id]
		snapshots = append(snapshots, perturb(&f))
		staged[id] = f
	}
	for id, f := range staged {
		copied := f
		s.flights[id] = &copied
	}
	s.history = append(s.history, snapshots...)
	return snapshots, nil
}

var _ repository.MarketRepository = (*fakeMarketStore)(nil)

func seededFlights(n int) []domain.Flight {
	flights := make([]domain.Flight, 0, n)
	for i := 1; i <= n; i++ {
		flights = append(flights, domain.Flight{
			ID:             int64(i),
			FlightNo:       "FB400",
			AirlineName:    "UnknownAir",
			DepartureTime:  testNow.Add(200 * time.Hour),
			BaseFare:       decimal.NewFromInt(1000),
			TotalSeats:     10,
			SeatsAvailable: 5,
		})
	}
	return flights
}

func newTestSimulator(store repository.MarketRepository, opts ...SimulatorOption) *Simulator {
	opts = append([]SimulatorOption{
		WithRand(rand.New(rand.NewSource(42))),
		WithNow(func() time.Time { return testNow }),
	}, opts...)
	return NewSimulator(store, testEngine(), zerolog.Nop(), opts...)
}

func TestSimulator_Tick_SamplesAtMostFive(t *testing.T) {
	store := newFakeMarketStore(seededFlights(20)...)
	sim := newTestSimulator(store)

	assert.NoError(t, sim.Tick(context.Background()))
	assert.Len(t, store.history, 5)

	seen := make(map[int64]struct{})
	for _, snap := range store.history {
		seen[snap.FlightID] = struct{}{}
	}
	assert.Len(t, seen, 5, "sampled flights must be distinct")
}

func TestSimulator_Tick_SmallFleetTouchesEveryFlight(t *testing.T) {
	store := newFakeMarketStore(seededFlights(3)...)
	sim := newTestSimulator(store)

	assert.NoError(t, sim.Tick(context.Background()))
	assert.Len(t, store.history, 3)
}

func TestSimulator_Tick_NoFlightsIsNoop(t *testing.T) {
	store := newFakeMarketStore()
	sim := newTestSimulator(store)

	assert.NoError(t, sim.Tick(context.Background()))
	assert.Empty(t, store.history)
}

func TestSimulator_Tick_SeatClampAndSnapshotConsistency(t *testing.T) {
	store := newFakeMarketStore(seededFlights(5)...)
	sim := newTestSimulator(store)

	for i := 0; i < 50; i++ {
		assert.NoError(t, sim.Tick(context.Background()))
	}

	for _, f := range store.flights {
		assert.GreaterOrEqual(t, f.SeatsAvailable, 0)
		assert.LessOrEqual(t, f.SeatsAvailable, f.TotalSeats)
		assert.NotNil(t, f.Demand, "tick must store a demand signal")
	}
	for _, snap := range store.history {
		assert.GreaterOrEqual(t, snap.SeatsAvailable, 0)
		assert.LessOrEqual(t, snap.SeatsAvailable, 10)
		assert.Contains(t, domain.DemandLevels, snap.Demand)
		assert.False(t, snap.Price.IsNegative())
		assert.Equal(t, testNow.UTC(), snap.RecordedAt)
	}
}

func TestSimulator_Tick_SnapshotPriceMatchesEngine(t *testing.T) {
	store := newFakeMarketStore(seededFlights(1)...)
	sim := newTestSimulator(store)

	assert.NoError(t, sim.Tick(context.Background()))
	assert.Len(t, store.history, 1)

	snap := store.history[0]
	flight := store.flights[snap.FlightID]
	want := testEngine().Price(pricing.Quote{
		BaseFare:       flight.BaseFare,
		SeatsAvailable: snap.SeatsAvailable,
		TotalSeats:     flight.TotalSeats,
		DepartureTime:  flight.DepartureTime,
		Carrier:        flight.AirlineName,
		Demand:         &snap.Demand,
	})
	assert.True(t, snap.Price.Equal(want), "want %s, got %s", want, snap.Price)
	assert.Equal(t, flight.SeatsAvailable, snap.SeatsAvailable, "snapshot must capture post-delta seats")
}

func TestSimulator_Tick_FailureRollsBackAndSurfaces(t *testing.T) {
	store := newFakeMarketStore(seededFlights(5)...)
	store.failing = true
	sim := newTestSimulator(store)

	err := sim.Tick(context.Background())

	assert.Error(t, err)
	assert.Empty(t, store.history)

	// the next tick after recovery proceeds normally
	store.failing = false
	assert.NoError(t, sim.Tick(context.Background()))
	assert.Len(t, store.history, 5)
}

func TestSimulator_Tick_SkipsWhilePreviousTickRuns(t *testing.T) {
	store := newFakeMarketStore(seededFlights(5)...)
	sim := newTestSimulator(store)

	sim.busy.Lock()
	defer sim.busy.Unlock()

	assert.NoError(t, sim.Tick(context.Background()))
	assert.Empty(t, store.history, "overlapping tick must be skipped")
}

func TestSimulator_Run_StopsOnContextCancel(t *testing.T) {
	store := newFakeMarketStore(seededFlights(5)...)
	sim := newTestSimulator(store, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop on context cancel")
	}
	assert.NotEmpty(t, store.history, "simulator should have ticked at least once")
}
