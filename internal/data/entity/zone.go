package entity

import "math"

// DefaultZoneRating is applied when a zone is created without a rating.
const DefaultZoneRating = 4.5

type Zone struct {
	Base
	Name          string   `db:"name"`
	Location      string   `db:"location"`
	Lat           *float64 `db:"lat"`
	Lon           *float64 `db:"lon"`
	TotalSlots    int      `db:"total_slots"`
	OccupiedSlots int      `db:"occupied_slots"`
	PricePerHour  float64  `db:"price_per_hour"`
	Rating        float64  `db:"rating"`
}

func (z *Zone) RemainingSlots() int {
	return z.TotalSlots - z.OccupiedSlots
}

// OccupancyPercent reports how full the zone is, 0-100. A zone with zero
// total slots counts as fully occupied so it can never be booked.
func (z *Zone) OccupancyPercent() int {
	if z.TotalSlots <= 0 {
		return 100
	}
	return int(math.Round(float64(z.OccupiedSlots) / float64(z.TotalSlots) * 100))
}

func (z *Zone) HasCoordinates() bool {
	return z.Lat != nil && z.Lon != nil
}
