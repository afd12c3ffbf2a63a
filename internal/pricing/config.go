package pricing

// Config holds the adjustment tables for the fare engine. All factors are
// additive deltas on a base multiplier of 1.0.
type Config struct {
	// Seat-ratio buckets, evaluated against seats_available/total_seats.
	PlentyRatio float64 // ratio >= PlentyRatio -> PlentyDelta
	ScarceRatio float64 // ratio < ScarceRatio -> ScarceDelta, else 0
	PlentyDelta float64
	ScarceDelta float64

	// Urgency buckets over hours until departure. Bucket upper bounds are
	// inclusive; anything beyond the last bound costs nothing extra.
	UrgencyBuckets []UrgencyBucket

	DemandDeltas map[string]float64

	PremiumCarriers map[string]struct{}
	BudgetCarriers  map[string]struct{}
	PremiumDelta    float64
	BudgetDelta     float64

	MinMultiplier float64
	MaxMultiplier float64
}

type UrgencyBucket struct {
	MaxHours float64
	Delta    float64
}

func DefaultConfig() Config {
	return Config{
		PlentyRatio: 0.7,
		ScarceRatio: 0.4,
		PlentyDelta: -0.10,
		ScarceDelta: 0.25,
		UrgencyBuckets: []UrgencyBucket{
			{MaxHours: 24, Delta: 0.40},
			{MaxHours: 72, Delta: 0.20},
			{MaxHours: 168, Delta: 0.10},
		},
		DemandDeltas: map[string]float64{
			"low":    -0.05,
			"medium": 0.0,
			"high":   0.20,
		},
		PremiumCarriers: carrierSet("AirIndia", "Vistara", "Emirates"),
		BudgetCarriers:  carrierSet("IndiGo", "SpiceJet", "AirAsia"),
		PremiumDelta:    0.10,
		BudgetDelta:     -0.05,
		MinMultiplier:   0.6,
		MaxMultiplier:   2.2,
	}
}

// WithOverrides returns a copy of the config with the non-empty override
// values applied. Zero values leave the defaults alone.
func (c Config) WithOverrides(premium, budget []string, minMult, maxMult float64) Config {
	if len(premium) > 0 {
		c.PremiumCarriers = carrierSet(premium...)
	}
	if len(budget) > 0 {
		c.BudgetCarriers = carrierSet(budget...)
	}
	if minMult > 0 {
		c.MinMultiplier = minMult
	}
	if maxMult > 0 {
		c.MaxMultiplier = maxMult
	}
	return c
}

func carrierSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
