package adaptor

import (
	"encoding/json"
	"net/http"

	"parkeasy/internal/dto/request"
	"parkeasy/internal/usecase"
	"parkeasy/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// StartSession handles POST /api/sessions (protected)
func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.StartSession(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "start session")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// EndSession handles POST /api/sessions/{id}/end (protected)
func (h *BookingHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.EndSession(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "end session")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ActiveSession handles GET /api/sessions/active (protected)
func (h *BookingHandler) ActiveSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	session, err := h.service.ActiveSession(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get active session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// History handles GET /api/sessions/history (protected)
func (h *BookingHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	history, err := h.service.History(r.Context(), userID.String())
	if err != nil {
		writeServiceError(w, h.log, err, "get history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}
