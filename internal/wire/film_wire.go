package wire

import (
	"screenvault/internal/adaptor"
	"screenvault/internal/data/entity"
	"screenvault/pkg/middleware"
	"screenvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFilm(
	r chi.Router,
	filmHandler *adaptor.FilmHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	// ==================== PUBLIC ROUTES ====================
	// Catalog reads take an optional token: owners and admins see
	// unpublished films, everyone else only the published catalog.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthJWT(secret, log))

		// GET /api/films - Published catalog (admins may filter by status)
		r.Get("/api/films", filmHandler.GetFilms)

		// GET /api/films/{id} - Film detail with presigned asset URLs
		r.Get("/api/films/{id}", filmHandler.GetFilmByID)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(secret, log))

		// POST /api/films - Submit a film for review (filmmakers)
		r.Post("/api/films", filmHandler.UploadFilm)

		// PUT /api/films/{id}/progress - Save watch position
		r.Put("/api/films/{id}/progress", filmHandler.SaveProgress)

		// GET /api/user/progress - Continue-watching list
		r.Get("/api/user/progress", filmHandler.ListProgress)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/films", func(r chi.Router) {
		r.Use(middleware.AuthJWT(secret, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		// POST /api/admin/films/{id}/publish - Move a film out of review
		r.Post("/{id}/publish", filmHandler.PublishFilm)

		// DELETE /api/admin/films/{id} - Remove a film from the catalog
		r.Delete("/{id}", filmHandler.DeleteFilm)
	})
}
