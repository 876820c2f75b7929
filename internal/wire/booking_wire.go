package wire

import (
	"parkeasy/internal/adaptor"
	"parkeasy/internal/data/repository"
	"parkeasy/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, repo *repository.Repository, log *zap.Logger) {
	// All session operations need an authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/sessions", bookingHandler.StartSession)
		r.Post("/api/sessions/{id}/end", bookingHandler.EndSession)
		r.Get("/api/sessions/active", bookingHandler.ActiveSession)
		r.Get("/api/sessions/history", bookingHandler.History)
	})
}
