// internal/wire/wire.go
package wire

import (
	"net/http"

	"screenvault/internal/adaptor"
	"screenvault/internal/data/repository"
	"screenvault/internal/notify"
	"screenvault/internal/storage"
	"screenvault/internal/usecase"
	"screenvault/pkg/middleware"
	"screenvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependency graph.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	notifier notify.Notifier,
	store storage.AssetStore,
) *App {
	service := usecase.NewService(repo, config, logger, notifier, store)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, handler.Reset, config, logger)
	wireUser(r, handler.User, config, logger)
	wireFilm(r, handler.Film, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
