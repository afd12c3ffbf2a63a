package flights

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arunkx/skyfare/internal/domain"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, sortBy, order string) ([]domain.Flight, error)
	Search(ctx context.Context, q SearchQuery) ([]PricedFlight, error)
	Quote(ctx context.Context, id int64) (*PricedFlight, error)
	History(ctx context.Context, flightID int64) ([]domain.FareSnapshot, error)
}

type Cache interface {
	GetFlights(ctx context.Context, sortBy, order string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, sortBy, order string, flights []domain.Flight) error
}

type SearchQuery struct {
	Origin      string
	Destination string
	TravelDate  time.Time
	SortBy      string
	Order       string
}

// PricedFlight decorates a flight row with the fare computed for it at
// query time. The computed price is not persisted.
type PricedFlight struct {
	domain.Flight
	DynamicPrice decimal.Decimal
}

type FlightService struct {
	repo    repository.FlightRepository
	history repository.FareHistoryRepository
	engine  *pricing.Engine
	cache   Cache
}

func NewFlightService(repo repository.FlightRepository, history repository.FareHistoryRepository, engine *pricing.Engine, cache Cache) *FlightService {
	return &FlightService{repo: repo, history: history, engine: engine, cache: cache}
}

func (s *FlightService) List(ctx context.Context, sortBy, order string) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, sortBy, order); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, sortBy, order)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, sortBy, order, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, q SearchQuery) ([]PricedFlight, error) {
	origin := NormalizeCity(q.Origin)
	destination := NormalizeCity(q.Destination)
	if origin == destination {
		return nil, domain.ErrSameCity
	}

	dayStart := time.Date(q.TravelDate.Year(), q.TravelDate.Month(), q.TravelDate.Day(), 0, 0, 0, 0, q.TravelDate.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	flights, err := s.repo.Search(ctx, origin, destination, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, domain.ErrNoFlightsFound
	}

	priced := make([]PricedFlight, 0, len(flights))
	for _, f := range flights {
		priced = append(priced, PricedFlight{Flight: f, DynamicPrice: s.price(f)})
	}

	desc := q.Order == repository.OrderDesc
	if q.SortBy == repository.SortByDuration {
		sort.SliceStable(priced, func(i, j int) bool {
			if desc {
				i, j = j, i
			}
			return priced[i].DurationMinutes < priced[j].DurationMinutes
		})
	} else {
		sort.SliceStable(priced, func(i, j int) bool {
			if desc {
				i, j = j, i
			}
			return priced[i].DynamicPrice.LessThan(priced[j].DynamicPrice)
		})
	}
	return priced, nil
}

func (s *FlightService) Quote(ctx context.Context, id int64) (*PricedFlight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PricedFlight{Flight: *flight, DynamicPrice: s.price(*flight)}, nil
}

func (s *FlightService) History(ctx context.Context, flightID int64) ([]domain.FareSnapshot, error) {
	history, err := s.history.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, domain.ErrNoFareHistory
	}
	return history, nil
}

func (s *FlightService) price(f domain.Flight) decimal.Decimal {
	return s.engine.Price(pricing.Quote{
		BaseFare:       f.BaseFare,
		SeatsAvailable: f.SeatsAvailable,
		TotalSeats:     f.TotalSeats,
		DepartureTime:  f.DepartureTime,
		Carrier:        f.AirlineName,
		Demand:         f.Demand,
	})
}

// NormalizeCity trims and title-cases a city name so "  new delhi " and
// "New Delhi" compare equal.
func NormalizeCity(city string) string {
	return cases.Title(language.English).String(strings.TrimSpace(city))
}

var _ FlightUseCase = (*FlightService)(nil)
