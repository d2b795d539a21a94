// Package fare prices one subscription week of auto-rickshaw rides.
package fare

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidDistance = errors.New("distance must be a finite non-negative number")
	ErrInvalidTime     = errors.New("pickup time must be between 00:00 and 23:59")
)

// Config is one pricing tier. BaseFare is shown to riders alongside the
// quote but is never added into the computed fare.
type Config struct {
	BaseFare    float64 `json:"base_fare"`
	PerKmRate   float64 `json:"per_km_rate"`
	MinimumFare float64 `json:"minimum_fare"`
}

// Scale returns the tier with every rate multiplied by m.
func (c Config) Scale(m float64) Config {
	return Config{
		BaseFare:    c.BaseFare * m,
		PerKmRate:   c.PerKmRate * m,
		MinimumFare: c.MinimumFare * m,
	}
}

// SurgeMultiplier is the single source of truth for night pricing; the surge
// tier is always derived from the normal tier so the two cannot drift apart.
const SurgeMultiplier = 1.5

// Normal is the default daytime tier.
var Normal = Config{BaseFare: 50, PerKmRate: 22.5, MinimumFare: 50}

// TimeOfDay is a wall-clock pickup time, assumed identical on every
// scheduled day of the week.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	t := TimeOfDay{Hour: h, Minute: m}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// ValidateDistance rejects negative or non-finite distances. Callers are
// expected to run this at the boundary; the calculators themselves trust
// their input.
func ValidateDistance(km float64) error {
	if km < 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		return ErrInvalidDistance
	}
	return nil
}

// Breakdown is the priced result for one subscription week.
// TotalWeeklyFare is always exactly PerRideFare * NumberOfDays.
type Breakdown struct {
	DistanceKm      float64 `json:"distance_km"`
	IsSurgePricing  bool    `json:"is_surge_pricing"`
	PerRideFare     int64   `json:"per_ride_fare"`
	NumberOfDays    int     `json:"number_of_days"`
	TotalWeeklyFare int64   `json:"total_weekly_fare"`
	BaseFare        float64 `json:"base_fare"`
	DistanceFare    float64 `json:"distance_fare"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
}
