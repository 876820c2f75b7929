package wire

import (
	"parkeasy/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireZone(r chi.Router, zoneHandler *adaptor.ZoneHandler) {
	// Zone discovery is public: drivers browse before logging in.
	r.Get("/api/zones", zoneHandler.Search)
	r.Get("/api/zones/nearby", zoneHandler.Nearby)
	r.Get("/api/zones/{id}", zoneHandler.GetZone)
}
