package adaptor

import (
	"net/http"

	"parkeasy/internal/geo"
	"parkeasy/internal/usecase"
	"parkeasy/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ZoneHandler struct {
	service usecase.ZoneService
	log     *zap.Logger
}

func NewZoneHandler(service usecase.ZoneService, log *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		service: service,
		log:     log.With(zap.String("handler", "zone")),
	}
}

// originFromQuery reads optional lat/lon query parameters. Both must be
// present and well-formed to get an origin.
func originFromQuery(r *http.Request) *geo.Point {
	lat := utils.ParseFloat(r.URL.Query().Get("lat"))
	lon := utils.ParseFloat(r.URL.Query().Get("lon"))
	if lat == nil || lon == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lon: *lon}
}

// Search handles GET /api/zones?q=&lat=&lon=
func (h *ZoneHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	zones, err := h.service.Search(r.Context(), query, originFromQuery(r))
	if err != nil {
		writeServiceError(w, h.log, err, "search zones")
		return
	}

	utils.ResponseSuccess(w, "success", zones)
}

// Nearby handles GET /api/zones/nearby?lat=&lon=
func (h *ZoneHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	zones, err := h.service.Nearby(r.Context(), originFromQuery(r))
	if err != nil {
		writeServiceError(w, h.log, err, "nearby zones")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{"zones": zones})
}

// GetZone handles GET /api/zones/{id}
func (h *ZoneHandler) GetZone(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "id")
	if zoneID == "" {
		utils.ResponseBadRequest(w, "Zone ID is required", nil)
		return
	}

	zone, err := h.service.GetZone(r.Context(), zoneID)
	if err != nil {
		writeServiceError(w, h.log, err, "get zone")
		return
	}

	utils.ResponseSuccess(w, "success", zone)
}
