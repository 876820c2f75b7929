package wire

import (
	"parkeasy/internal/adaptor"
	"parkeasy/internal/data/repository"
	"parkeasy/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, handler *adaptor.Handler, repo *repository.Repository, log *zap.Logger) {
	// Public
	r.Post("/api/auth/register", handler.Auth.Register)
	r.Post("/api/auth/login", handler.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/auth/logout", handler.Auth.Logout)
		r.Get("/api/profile", handler.User.GetProfile)
	})
}
