package wire

import (
	"net/http"

	"parkeasy/internal/adaptor"
	"parkeasy/internal/data/repository"
	"parkeasy/internal/usecase"
	"parkeasy/pkg/middleware"
	"parkeasy/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependency graph.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler, repo, logger)
	wireZone(r, handler.Zone)
	wireBooking(r, handler.Booking, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
