package usecase

import (
	"context"
	"time"

	"screenvault/internal/data/entity"
	"screenvault/internal/data/repository"
	"screenvault/internal/dto/request"
	"screenvault/internal/dto/response"
	"screenvault/internal/storage"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FilmService interface {
	UploadFilm(ctx context.Context, filmmakerID uuid.UUID, role entity.UserRole, req *request.FilmUploadRequest) (*response.FilmUploadResponse, error)
	GetFilms(ctx context.Context, role entity.UserRole, req *request.PaginatedRequest, status string) (*response.PaginatedResponse[response.FilmResponse], error)
	GetFilmByID(ctx context.Context, callerID uuid.UUID, role entity.UserRole, filmID uuid.UUID) (*response.FilmDetailResponse, error)
	PublishFilm(ctx context.Context, filmID uuid.UUID) (*response.FilmResponse, error)
	DeleteFilm(ctx context.Context, filmID uuid.UUID) error
	SaveProgress(ctx context.Context, userID, filmID uuid.UUID, req *request.WatchProgressRequest) (*response.WatchProgressResponse, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]response.WatchProgressResponse, error)
}

type filmService struct {
	repo   *repository.Repository
	store  storage.AssetStore
	config *utils.Config
	log    *zap.Logger
}

func NewFilmService(
	repo *repository.Repository,
	store storage.AssetStore,
	config *utils.Config,
	log *zap.Logger,
) FilmService {
	return &filmService{
		repo:   repo,
		store:  store,
		config: config,
		log:    log,
	}
}

func (s *filmService) UploadFilm(ctx context.Context, filmmakerID uuid.UUID, role entity.UserRole, req *request.FilmUploadRequest) (*response.FilmUploadResponse, error) {
	// 1. Only filmmakers submit films
	if role != entity.RoleFilmmaker && role != entity.RoleAdmin {
		return nil, apperr.Forbidden("Only filmmakers can upload films.")
	}

	// 2. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}
	if req.Year != nil && *req.Year > time.Now().Year()+1 {
		return nil, apperr.Validation("Year cannot be in the future.")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	rentalHours := req.RentalHours
	if rentalHours == 0 {
		rentalHours = 48
	}

	// 3. Build the record; every new film starts in review
	film := &entity.Film{
		Base:            entity.Base{ID: utils.GenerateUUID(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FilmmakerID:     filmmakerID,
		Title:           req.Title,
		Year:            req.Year,
		Logline:         req.Logline,
		Type:            entity.FilmType(req.Type),
		Genres:          req.Genres,
		Status:          entity.FilmStatusReview,
		DurationSeconds: req.DurationSeconds,
		Currency:        currency,
		RentPrice:       req.RentPrice,
		RentalHours:     rentalHours,
		BuyPrice:        req.BuyPrice,
	}

	// 4. Presign the requested asset slots before persisting so the stored
	// keys always match the URLs handed back
	resp := &response.FilmUploadResponse{}
	if req.WithThumbnail {
		key, url, err := s.store.PresignUpload(ctx, "thumbnail")
		if err != nil {
			s.log.Error("Failed to presign thumbnail upload", zap.Error(err))
			return nil, apperr.Internal("Failed to prepare upload", err)
		}
		film.ThumbnailKey = &key
		resp.ThumbnailURL = url
	}
	if req.WithTrailer {
		key, url, err := s.store.PresignUpload(ctx, "trailer")
		if err != nil {
			s.log.Error("Failed to presign trailer upload", zap.Error(err))
			return nil, apperr.Internal("Failed to prepare upload", err)
		}
		film.TrailerKey = &key
		resp.TrailerURL = url
	}
	if req.WithFullFilm {
		key, url, err := s.store.PresignUpload(ctx, "film")
		if err != nil {
			s.log.Error("Failed to presign film upload", zap.Error(err))
			return nil, apperr.Internal("Failed to prepare upload", err)
		}
		film.FullFilmKey = &key
		resp.FullFilmURL = url
	}

	// 5. Persist
	if err := s.repo.Film.Create(ctx, film); err != nil {
		s.log.Error("Failed to create film", zap.Error(err), zap.String("title", req.Title))
		return nil, apperr.Internal("Failed to upload film", err)
	}

	s.log.Info("Film submitted for review",
		zap.String("film_id", film.ID.String()),
		zap.String("filmmaker_id", filmmakerID.String()),
	)

	resp.Film = response.FilmToResponse(film)
	return resp, nil
}

func (s *filmService) GetFilms(ctx context.Context, role entity.UserRole, req *request.PaginatedRequest, status string) (*response.PaginatedResponse[response.FilmResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}

	// Non-admin callers only ever see the published catalog; admins may
	// narrow by any status or pass none to see everything.
	var filter *entity.FilmStatus
	if role == entity.RoleAdmin {
		if status != "" {
			fs := entity.FilmStatus(status)
			switch fs {
			case entity.FilmStatusReview, entity.FilmStatusPublished, entity.FilmStatusRejected:
				filter = &fs
			default:
				return nil, apperr.Validation("Invalid status filter.")
			}
		}
	} else {
		published := entity.FilmStatusPublished
		filter = &published
	}

	films, err := s.repo.Film.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		s.log.Error("Failed to list films", zap.Error(err))
		return nil, apperr.Internal("Failed to get films", err)
	}

	total, err := s.repo.Film.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count films", zap.Error(err))
		return nil, apperr.Internal("Failed to get films", err)
	}

	items := make([]response.FilmResponse, 0, len(films))
	for _, f := range films {
		items = append(items, response.FilmToResponse(f))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *filmService) GetFilmByID(ctx context.Context, callerID uuid.UUID, role entity.UserRole, filmID uuid.UUID) (*response.FilmDetailResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, apperr.Internal("Failed to get film", err)
	}
	if film == nil {
		return nil, apperr.NotFound("Film does not exist.")
	}

	// Unpublished films are visible only to their owner and to admins
	if film.Status != entity.FilmStatusPublished &&
		role != entity.RoleAdmin && film.FilmmakerID != callerID {
		return nil, apperr.NotFound("Film does not exist.")
	}

	resp := &response.FilmDetailResponse{
		FilmResponse: response.FilmToResponse(film),
		PublishedAt:  film.PublishedAt,
	}

	// Presign failures degrade to missing URLs rather than failing the read
	if film.ThumbnailKey != nil {
		if url, err := s.store.PresignDownload(ctx, *film.ThumbnailKey); err == nil {
			resp.ThumbnailURL = url
		} else {
			s.log.Warn("Failed to presign thumbnail download", zap.Error(err))
		}
	}
	if film.TrailerKey != nil {
		if url, err := s.store.PresignDownload(ctx, *film.TrailerKey); err == nil {
			resp.TrailerURL = url
		} else {
			s.log.Warn("Failed to presign trailer download", zap.Error(err))
		}
	}
	if film.FullFilmKey != nil {
		if url, err := s.store.PresignDownload(ctx, *film.FullFilmKey); err == nil {
			resp.FullFilmURL = url
		} else {
			s.log.Warn("Failed to presign film download", zap.Error(err))
		}
	}

	if callerID != uuid.Nil {
		progress, err := s.repo.WatchProgress.Find(ctx, callerID, filmID)
		if err != nil {
			s.log.Warn("Failed to find watch progress", zap.Error(err),
				zap.String("user_id", callerID.String()),
				zap.String("film_id", filmID.String()),
			)
		} else if progress != nil {
			wp := response.ProgressToResponse(progress)
			resp.Progress = &wp
		}
	}

	return resp, nil
}

func (s *filmService) PublishFilm(ctx context.Context, filmID uuid.UUID) (*response.FilmResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, apperr.Internal("Failed to publish film", err)
	}
	if film == nil {
		return nil, apperr.NotFound("Film does not exist.")
	}

	if film.Status == entity.FilmStatusPublished {
		return nil, apperr.Conflict("Film is already published.")
	}

	film.Publish(time.Now())
	film.UpdatedAt = time.Now()

	if err := s.repo.Film.Update(ctx, film); err != nil {
		s.log.Error("Failed to publish film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, apperr.Internal("Failed to publish film", err)
	}

	s.log.Info("Film published", zap.String("film_id", film.ID.String()))

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) DeleteFilm(ctx context.Context, filmID uuid.UUID) error {
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return apperr.Internal("Failed to delete film", err)
	}
	if film == nil {
		return apperr.NotFound("Film does not exist.")
	}

	if err := s.repo.Film.Delete(ctx, filmID); err != nil {
		s.log.Error("Failed to delete film", zap.Error(err), zap.String("film_id", filmID.String()))
		return apperr.Internal("Failed to delete film", err)
	}

	s.log.Info("Film deleted", zap.String("film_id", filmID.String()))
	return nil
}

func (s *filmService) SaveProgress(ctx context.Context, userID, filmID uuid.UUID, req *request.WatchProgressRequest) (*response.WatchProgressResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}
	if req.DurationSeconds > 0 && req.PositionSeconds > req.DurationSeconds {
		return nil, apperr.Validation("Position cannot exceed duration.")
	}

	// 2. Progress is only tracked against published films
	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil {
		s.log.Error("Failed to find film", zap.Error(err), zap.String("film_id", filmID.String()))
		return nil, apperr.Internal("Failed to save progress", err)
	}
	if film == nil || film.Status != entity.FilmStatusPublished {
		return nil, apperr.NotFound("Film does not exist.")
	}

	// 3. Last writer wins; no position monotonicity is enforced so
	// rewinding a film records the rewound position
	progress := &entity.WatchProgress{
		BaseSimple:      entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now()},
		UserID:          userID,
		FilmID:          filmID,
		PositionSeconds: req.PositionSeconds,
		DurationSeconds: req.DurationSeconds,
		Completed:       req.Completed,
		LastWatchedAt:   time.Now(),
	}

	if err := s.repo.WatchProgress.Upsert(ctx, progress); err != nil {
		s.log.Error("Failed to upsert watch progress", zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID.String()),
		)
		return nil, apperr.Internal("Failed to save progress", err)
	}

	resp := response.ProgressToResponse(progress)
	return &resp, nil
}

func (s *filmService) ListProgress(ctx context.Context, userID uuid.UUID) ([]response.WatchProgressResponse, error) {
	entries, err := s.repo.WatchProgress.FindAllByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list watch progress", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal("Failed to get progress", err)
	}

	items := make([]response.WatchProgressResponse, 0, len(entries))
	for _, wp := range entries {
		items = append(items, response.ProgressToResponse(wp))
	}
	return items, nil
}
