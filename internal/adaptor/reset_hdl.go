package adaptor

import (
	"encoding/json"
	"net/http"

	"screenvault/internal/dto/request"
	"screenvault/internal/usecase"
	"screenvault/pkg/utils"

	"go.uber.org/zap"
)

type ResetHandler struct {
	service usecase.ResetService
	log     *zap.Logger
}

func NewResetHandler(service usecase.ResetService, log *zap.Logger) *ResetHandler {
	return &ResetHandler{
		service: service,
		log:     log.With(zap.String("handler", "reset")),
	}
}

// ForgotPassword handles POST /api/forgot-password
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.RequestReset(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email.", result)
}

// VerifyResetCode handles POST /api/verify-reset-code
func (h *ResetHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.VerifyOtp(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify reset code")
		return
	}

	utils.ResponseSuccess(w, "OTP verified.", result)
}

// ResetPassword handles POST /api/reset-password
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseNoContent(w)
}
