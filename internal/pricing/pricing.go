package pricing

import (
	"math"
	"time"

	"parkeasy/internal/data/entity"
)

// MinimumCharge is the lowest amount billed for any completed session,
// regardless of how short it was.
const MinimumCharge = 2.00

// Cost derives the final charge for a completed session from its duration
// and the zone's hourly rate, applying the minimum-charge floor. Returns
// ErrInvalidInterval when end is before start.
func Cost(start, end time.Time, hourlyRate float64) (float64, error) {
	raw, err := LiveCost(start, end, hourlyRate)
	if err != nil {
		return 0, err
	}
	return math.Max(raw, MinimumCharge), nil
}

// LiveCost is the running cost of an in-progress session, without the
// minimum-charge floor. It mutates nothing and is safe to call repeatedly.
func LiveCost(start, now time.Time, hourlyRate float64) (float64, error) {
	if now.Before(start) {
		return 0, entity.ErrInvalidInterval
	}
	hours := now.Sub(start).Seconds() / 3600
	return round2(hours * hourlyRate), nil
}

// round2 rounds half up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
