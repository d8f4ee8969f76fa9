package usecase

import (
	"screenvault/internal/data/repository"
	"screenvault/internal/notify"
	"screenvault/internal/storage"
	"screenvault/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles every use case behind one handle for wiring.
type Service struct {
	Auth  AuthService
	Reset ResetService
	User  UserService
	Film  FilmService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	notifier notify.Notifier,
	store storage.AssetStore,
) *Service {
	return &Service{
		Auth:  NewAuthService(repo, config, log),
		Reset: NewResetService(repo, notifier, config, log),
		User:  NewUserService(repo, config, log),
		Film:  NewFilmService(repo, store, config, log),
	}
}
