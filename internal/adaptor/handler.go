package adaptor

import (
	"net/http"

	"screenvault/internal/usecase"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Reset *ResetHandler
	User  *UserHandler
	Film  *FilmHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Reset: NewResetHandler(service.Reset, log),
		User:  NewUserHandler(service.User, log),
		Film:  NewFilmHandler(service.Film, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
// Anything untagged is treated as internal and logged with its cause.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	msg := apperr.Message(err, "Internal server error")

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		utils.ResponseBadRequest(w, msg, nil)
	case apperr.KindExpired:
		utils.ResponseBadRequest(w, msg, nil)
	case apperr.KindAuth:
		utils.ResponseUnauthorized(w, msg)
	case apperr.KindForbidden:
		utils.ResponseForbidden(w, msg)
	case apperr.KindNotFound:
		utils.ResponseNotFound(w, msg)
	case apperr.KindConflict:
		utils.ResponseConflict(w, msg)
	case apperr.KindDelivery:
		log.Error("Delivery failure", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, msg)
	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
