package geo

import (
	"math"
	"sort"

	"parkeasy/internal/data/entity"
)

// Earth radius in kilometers, as used by the haversine formula.
const earthRadiusKm = 6371

type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RankedZone pairs a zone with its distance from the query origin.
// Distance is nil when no origin was given or the zone has no coordinates.
type RankedZone struct {
	Zone     *entity.Zone
	Distance *float64
}

// DisplayDistance returns the distance rounded to one decimal place.
// Sorting always uses the unrounded value.
func (r RankedZone) DisplayDistance() *float64 {
	if r.Distance == nil {
		return nil
	}
	d := math.Round(*r.Distance*10) / 10
	return &d
}

// Rank orders zones by distance from origin, nearest first. Zones without
// coordinates sort last; ties keep their input order. With a nil origin
// the input order is preserved and no distances are computed.
func Rank(zones []*entity.Zone, origin *Point) []RankedZone {
	ranked := make([]RankedZone, len(zones))
	for i, z := range zones {
		ranked[i] = RankedZone{Zone: z}
		if origin != nil && z.HasCoordinates() {
			d := Distance(*origin, Point{Lat: *z.Lat, Lon: *z.Lon})
			ranked[i].Distance = &d
		}
	}

	if origin == nil {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return sortKey(ranked[i]) < sortKey(ranked[j])
	})

	return ranked
}

func sortKey(r RankedZone) float64 {
	if r.Distance == nil {
		return math.Inf(1)
	}
	return *r.Distance
}
