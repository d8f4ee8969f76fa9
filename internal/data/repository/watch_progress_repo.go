package repository

import (
	"context"
	"fmt"

	"screenvault/internal/data/entity"
	"screenvault/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WatchProgressRepository interface {
	Upsert(ctx context.Context, progress *entity.WatchProgress) error
	Find(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchProgress, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchProgress, error)
}

type watchProgressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchProgressRepository(db database.PgxIface, log *zap.Logger) WatchProgressRepository {
	return &watchProgressRepository{
		db:  db,
		log: log.With(zap.String("repository", "watch_progress")),
	}
}

// Upsert writes progress for a (user, film) pair, one row per pair.
func (r *watchProgressRepository) Upsert(ctx context.Context, progress *entity.WatchProgress) error {
	query := `
		INSERT INTO watch_progress (id, user_id, film_id, position_s, duration_s,
		                  completed, last_watched_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, film_id) DO UPDATE
		SET position_s = EXCLUDED.position_s,
		    duration_s = EXCLUDED.duration_s,
		    completed = EXCLUDED.completed,
		    last_watched_at = EXCLUDED.last_watched_at
	`

	_, err := r.db.Exec(ctx, query,
		progress.ID,
		progress.UserID,
		progress.FilmID,
		progress.PositionSeconds,
		progress.DurationSeconds,
		progress.Completed,
		progress.LastWatchedAt,
		progress.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert watch progress",
			zap.Error(err),
			zap.String("user_id", progress.UserID.String()),
			zap.String("film_id", progress.FilmID.String()),
		)
		return fmt.Errorf("upsert watch progress: %w", err)
	}

	return nil
}

func (r *watchProgressRepository) Find(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchProgress, error) {
	query := `
		SELECT id, user_id, film_id, position_s, duration_s,
		       completed, last_watched_at, created_at
		FROM watch_progress
		WHERE user_id = $1 AND film_id = $2
	`

	var wp entity.WatchProgress
	err := r.db.QueryRow(ctx, query, userID, filmID).Scan(
		&wp.ID,
		&wp.UserID,
		&wp.FilmID,
		&wp.PositionSeconds,
		&wp.DurationSeconds,
		&wp.Completed,
		&wp.LastWatchedAt,
		&wp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watch progress",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID.String()),
		)
		return nil, fmt.Errorf("find watch progress: %w", err)
	}

	return &wp, nil
}

func (r *watchProgressRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchProgress, error) {
	query := `
		SELECT id, user_id, film_id, position_s, duration_s,
		       completed, last_watched_at, created_at
		FROM watch_progress
		WHERE user_id = $1
		ORDER BY last_watched_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to get watch progress for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find watch progress for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var list []*entity.WatchProgress
	for rows.Next() {
		var wp entity.WatchProgress
		err := rows.Scan(
			&wp.ID,
			&wp.UserID,
			&wp.FilmID,
			&wp.PositionSeconds,
			&wp.DurationSeconds,
			&wp.Completed,
			&wp.LastWatchedAt,
			&wp.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan watch progress row", zap.Error(err))
			return nil, fmt.Errorf("scan watch progress row: %w", err)
		}
		list = append(list, &wp)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate watch progress rows: %w", err)
	}

	return list, nil
}
