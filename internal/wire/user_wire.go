package wire

import (
	"screenvault/internal/adaptor"
	"screenvault/internal/data/entity"
	"screenvault/pkg/middleware"
	"screenvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(secret, log))

		// GET /api/user/profile - Own profile
		r.Get("/api/user/profile", userHandler.GetProfile)

		// PATCH /api/user/profile - Partial profile update
		r.Patch("/api/user/profile", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.AuthJWT(secret, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		// GET /api/admin/users - Paginated user listing
		r.Get("/", userHandler.GetAllUsers)

		// DELETE /api/admin/users/{id} - Soft delete an account
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
