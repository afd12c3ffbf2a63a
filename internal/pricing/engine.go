package pricing

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arunkx/skyfare/internal/domain"
)

// DemandSource supplies a demand level when the caller has none. The engine
// never persists what it draws.
type DemandSource interface {
	Draw() domain.DemandLevel
}

// RandomDemand draws uniformly from the three demand levels.
type RandomDemand struct {
	rng *rand.Rand
}

func NewRandomDemand(rng *rand.Rand) *RandomDemand {
	return &RandomDemand{rng: rng}
}

func (r *RandomDemand) Draw() domain.DemandLevel {
	if r.rng != nil {
		return domain.DemandLevels[r.rng.Intn(len(domain.DemandLevels))]
	}
	return domain.DemandLevels[rand.Intn(len(domain.DemandLevels))]
}

// FixedDemand always returns the same level. Used in tests and anywhere a
// deterministic quote is needed.
type FixedDemand domain.DemandLevel

func (f FixedDemand) Draw() domain.DemandLevel { return domain.DemandLevel(f) }

// Quote is the flight state a price is computed from.
type Quote struct {
	BaseFare       decimal.Decimal
	SeatsAvailable int
	TotalSeats     int
	DepartureTime  time.Time
	Carrier        string
	Demand         *domain.DemandLevel
}

// Engine computes a dynamic fare from a flight snapshot. Deterministic when
// the quote carries a demand level; otherwise the demand source decides.
type Engine struct {
	cfg    Config
	demand DemandSource
	now    func() time.Time
}

type EngineOption func(*Engine)

func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(cfg Config, demand DemandSource, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg, demand: demand, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Price returns the dynamic fare rounded to two decimal places. The final
// multiplier is clamped to [MinMultiplier, MaxMultiplier], so for a positive
// base fare the result always lies within those bounds of it. A base fare of
// zero or less is returned unchanged.
func (e *Engine) Price(q Quote) decimal.Decimal {
	if !q.BaseFare.IsPositive() {
		return q.BaseFare
	}

	factor := 1.0 +
		e.seatFactor(q.SeatsAvailable, q.TotalSeats) +
		e.urgencyFactor(q.DepartureTime) +
		e.demandFactor(q.Demand) +
		e.carrierFactor(q.Carrier)

	if factor < e.cfg.MinMultiplier {
		factor = e.cfg.MinMultiplier
	}
	if factor > e.cfg.MaxMultiplier {
		factor = e.cfg.MaxMultiplier
	}

	return q.BaseFare.Mul(decimal.NewFromFloat(factor)).Round(2)
}

func (e *Engine) seatFactor(available, total int) float64 {
	if total <= 0 {
		return 0
	}
	ratio := float64(available) / float64(total)
	switch {
	case ratio >= e.cfg.PlentyRatio:
		return e.cfg.PlentyDelta
	case ratio >= e.cfg.ScarceRatio:
		return 0
	default:
		return e.cfg.ScarceDelta
	}
}

func (e *Engine) urgencyFactor(departure time.Time) float64 {
	hours := departure.Sub(e.now()).Hours()
	if hours <= 0 {
		// Departed or in the air.
		return 0
	}
	for _, b := range e.cfg.UrgencyBuckets {
		if hours <= b.MaxHours {
			return b.Delta
		}
	}
	return 0
}

func (e *Engine) demandFactor(level *domain.DemandLevel) float64 {
	d := domain.DemandLevel("")
	if level != nil {
		d = *level
	} else if e.demand != nil {
		d = e.demand.Draw()
	}
	return e.cfg.DemandDeltas[string(d)]
}

func (e *Engine) carrierFactor(name string) float64 {
	if _, ok := e.cfg.PremiumCarriers[name]; ok {
		return e.cfg.PremiumDelta
	}
	if _, ok := e.cfg.BudgetCarriers[name]; ok {
		return e.cfg.BudgetDelta
	}
	return 0
}
