package response

import (
	"parkeasy/internal/data/entity"
	"parkeasy/internal/geo"
)

type ZoneResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Lat              *float64 `json:"lat,omitempty"`
	Lon              *float64 `json:"lon,omitempty"`
	TotalSlots       int      `json:"total_slots"`
	RemainingSlots   int      `json:"remaining_slots"`
	OccupancyPercent int      `json:"occupancy_percent"`
	PricePerHour     float64  `json:"price_per_hour"`
	Rating           float64  `json:"rating"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
}

// NearbyZoneResponse is the compact shape served to map clients.
type NearbyZoneResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Price    int      `json:"price"`
	Slots    int      `json:"slots"`
	Rating   float64  `json:"rating"`
	Distance *float64 `json:"distance,omitempty"`
}

func ZoneToResponse(ranked geo.RankedZone) ZoneResponse {
	zone := ranked.Zone
	return ZoneResponse{
		ID:               zone.ID.String(),
		Name:             zone.Name,
		Location:         zone.Location,
		Lat:              zone.Lat,
		Lon:              zone.Lon,
		TotalSlots:       zone.TotalSlots,
		RemainingSlots:   zone.RemainingSlots(),
		OccupancyPercent: zone.OccupancyPercent(),
		PricePerHour:     zone.PricePerHour,
		Rating:           zone.Rating,
		DistanceKm:       ranked.DisplayDistance(),
	}
}

func NearbyZoneToResponse(zone *entity.Zone, distance *float64) NearbyZoneResponse {
	return NearbyZoneResponse{
		ID:       zone.ID.String(),
		Name:     zone.Name,
		Lat:      zone.Lat,
		Lon:      zone.Lon,
		Price:    int(zone.PricePerHour),
		Slots:    zone.RemainingSlots(),
		Rating:   zone.Rating,
		Distance: distance,
	}
}
