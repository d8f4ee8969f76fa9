package adaptor

import (
	"encoding/json"
	"net/http"

	"screenvault/internal/data/entity"
	"screenvault/internal/dto/request"
	"screenvault/internal/usecase"
	"screenvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// callerRole resolves the authenticated role, defaulting to viewer for
// anonymous catalog reads.
func callerRole(r *http.Request) entity.UserRole {
	if role, ok := utils.GetRoleFromContext(r.Context()); ok {
		return entity.UserRole(role)
	}
	return entity.RoleViewer
}

// UploadFilm handles POST /api/films (filmmaker)
func (h *FilmHandler) UploadFilm(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.FilmUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UploadFilm(r.Context(), userID, callerRole(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upload film")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetFilms handles GET /api/films (public catalog)
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}
	status := query.Get("status")

	result, err := h.service.GetFilms(r.Context(), callerRole(r), req, status)
	if err != nil {
		handleServiceError(w, h.log, err, "get films")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetFilmByID handles GET /api/films/{id}
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	filmID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	// Anonymous callers get the nil caller id; ownership checks then only
	// pass for published films.
	callerID, _ := utils.GetUserIDFromContext(r.Context())

	result, err := h.service.GetFilmByID(r.Context(), callerID, callerRole(r), filmID)
	if err != nil {
		handleServiceError(w, h.log, err, "get film")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// PublishFilm handles POST /api/admin/films/{id}/publish (admin)
func (h *FilmHandler) PublishFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	result, err := h.service.PublishFilm(r.Context(), filmID)
	if err != nil {
		handleServiceError(w, h.log, err, "publish film")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// DeleteFilm handles DELETE /api/admin/films/{id} (admin)
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	if err := h.service.DeleteFilm(r.Context(), filmID); err != nil {
		handleServiceError(w, h.log, err, "delete film")
		return
	}

	utils.ResponseNoContent(w)
}

// SaveProgress handles PUT /api/films/{id}/progress (protected)
func (h *FilmHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	filmID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid film ID", nil)
		return
	}

	var req request.WatchProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.SaveProgress(r.Context(), userID, filmID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save progress")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListProgress handles GET /api/user/progress (protected)
func (h *FilmHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list progress")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
