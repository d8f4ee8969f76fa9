package wire

import (
	"screenvault/internal/adaptor"
	"screenvault/pkg/middleware"
	"screenvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	resetHandler *adaptor.ResetHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/sign-up", authHandler.Signup)
	r.Post("/api/sign-in", authHandler.Signin)
	r.Post("/api/admin-sign-in", authHandler.AdminSignin)
	r.Post("/api/refresh", authHandler.Refresh)

	// Password recovery: request OTP -> verify OTP -> reset
	r.Post("/api/forgot-password", resetHandler.ForgotPassword)
	r.Post("/api/verify-reset-code", resetHandler.VerifyResetCode)
	r.Post("/api/reset-password", resetHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthJWT(secret, log)).Post("/api/change-password", authHandler.ChangePassword)
}
