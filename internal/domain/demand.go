package domain

// DemandLevel is the simulated market demand signal used as a pricing input.
type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandMedium DemandLevel = "medium"
	DemandHigh   DemandLevel = "high"
)

var DemandLevels = []DemandLevel{DemandLow, DemandMedium, DemandHigh}
