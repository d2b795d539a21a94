package fare

import (
	"math"
	"time"
)

// Engine computes weekly subscription fares from an injected tier pair.
// It is pure and safe for concurrent use.
type Engine struct {
	normal Config
	surge  Config
}

// NewEngine builds an engine from a normal tier; the surge tier is derived
// as normal × SurgeMultiplier.
func NewEngine(normal Config) *Engine {
	return &Engine{normal: normal, surge: normal.Scale(SurgeMultiplier)}
}

// DefaultEngine uses the built-in Normal tier.
func DefaultEngine() *Engine {
	return NewEngine(Normal)
}

// IsSurgeHour reports whether the nightly surge window applies. The window
// runs from 22:00 up to but not including 07:00; minutes do not matter.
func IsSurgeHour(hour int) bool {
	return hour >= 22 || hour < 7
}

// PerRide returns the rounded per-ride fare, whether surge pricing applied,
// and the tier used. The fare is max(distance × per-km rate, minimum fare)
// rounded half away from zero; the tier's base fare is display-only.
func (e *Engine) PerRide(distanceKm float64, pickup TimeOfDay) (int64, bool, Config) {
	surge := IsSurgeHour(pickup.Hour)
	cfg := e.normal
	if surge {
		cfg = e.surge
	}
	fare := int64(math.Round(math.Max(distanceKm*cfg.PerKmRate, cfg.MinimumFare)))
	return fare, surge, cfg
}

// Calculate prices a full subscription week. Duplicate weekdays are counted
// once. An empty day set yields a zero total; enforcing a minimum number of
// days per week is the caller's business rule, not the engine's.
func (e *Engine) Calculate(distanceKm float64, pickup TimeOfDay, days []time.Weekday) Breakdown {
	perRide, surge, cfg := e.PerRide(distanceKm, pickup)

	n := countDistinct(days)
	multiplier := 1.0
	if surge {
		multiplier = SurgeMultiplier
	}

	return Breakdown{
		DistanceKm:      distanceKm,
		IsSurgePricing:  surge,
		PerRideFare:     perRide,
		NumberOfDays:    n,
		TotalWeeklyFare: perRide * int64(n),
		BaseFare:        cfg.BaseFare,
		DistanceFare:    distanceKm * cfg.PerKmRate,
		SurgeMultiplier: multiplier,
	}
}

func countDistinct(days []time.Weekday) int {
	var seen [7]bool
	n := 0
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		n++
	}
	return n
}
