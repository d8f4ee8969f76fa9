package repository

import (
	"screenvault/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	RefreshToken  RefreshTokenRepository
	Film          FilmRepository
	WatchProgress WatchProgressRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		RefreshToken:  NewRefreshTokenRepository(db, log),
		Film:          NewFilmRepository(db, log),
		WatchProgress: NewWatchProgressRepository(db, log),
	}
}
