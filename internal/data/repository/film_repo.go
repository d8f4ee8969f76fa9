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

type FilmRepository interface {
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FindAll(ctx context.Context, limit, offset int, status *entity.FilmStatus) ([]*entity.Film, error)
	CountAll(ctx context.Context, status *entity.FilmStatus) (int64, error)
	Update(ctx context.Context, film *entity.Film) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

const filmColumns = `id, filmmaker_id, title, year, logline, type, genres,
	       thumbnail_key, trailer_key, full_film_key,
	       status, duration_s, currency, rent_price, rental_hours, buy_price,
	       published_at, views, total_earning,
	       created_at, updated_at, deleted_at`

func scanFilm(row pgx.Row) (*entity.Film, error) {
	var film entity.Film
	err := row.Scan(
		&film.ID,
		&film.FilmmakerID,
		&film.Title,
		&film.Year,
		&film.Logline,
		&film.Type,
		&film.Genres,
		&film.ThumbnailKey,
		&film.TrailerKey,
		&film.FullFilmKey,
		&film.Status,
		&film.DurationSeconds,
		&film.Currency,
		&film.RentPrice,
		&film.RentalHours,
		&film.BuyPrice,
		&film.PublishedAt,
		&film.Views,
		&film.TotalEarning,
		&film.CreatedAt,
		&film.UpdatedAt,
		&film.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

func (fr *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (id, filmmaker_id, title, year, logline, type, genres,
		                  thumbnail_key, trailer_key, full_film_key,
		                  status, duration_s, currency, rent_price, rental_hours, buy_price,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := fr.db.Exec(ctx, query,
		film.ID,
		film.FilmmakerID,
		film.Title,
		film.Year,
		film.Logline,
		film.Type,
		film.Genres,
		film.ThumbnailKey,
		film.TrailerKey,
		film.FullFilmKey,
		film.Status,
		film.DurationSeconds,
		film.Currency,
		film.RentPrice,
		film.RentalHours,
		film.BuyPrice,
		film.CreatedAt,
		film.UpdatedAt,
	)

	if err != nil {
		fr.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("title", film.Title),
			zap.String("filmmaker_id", film.FilmmakerID.String()),
		)
		return fmt.Errorf("create film %s: %w", film.Title, err)
	}

	return nil
}

func (fr *filmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	query := `
		SELECT ` + filmColumns + `
		FROM films
		WHERE id = $1 AND deleted_at IS NULL
	`

	film, err := scanFilm(fr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		fr.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return nil, fmt.Errorf("find film by ID %s: %w", id.String(), err)
	}

	return film, nil
}

// FindAll retrieves a paginated film list, optionally filtered by status.
func (fr *filmRepository) FindAll(ctx context.Context, limit, offset int, status *entity.FilmStatus) ([]*entity.Film, error) {
	query := `
		SELECT ` + filmColumns + `
		FROM films
		WHERE deleted_at IS NULL
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := fr.db.Query(ctx, query, limit, offset, status)
	if err != nil {
		fr.log.Error("Failed to get films",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all films limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			fr.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, film)
	}

	if err := rows.Err(); err != nil {
		fr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate films rows: %w", err)
	}

	return films, nil
}

func (fr *filmRepository) CountAll(ctx context.Context, status *entity.FilmStatus) (int64, error) {
	query := `
		SELECT COUNT(*) FROM films
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR status = $1)
	`

	var count int64
	err := fr.db.QueryRow(ctx, query, status).Scan(&count)
	if err != nil {
		fr.log.Error("Database error counting films", zap.Error(err))
		return 0, fmt.Errorf("count all films: %w", err)
	}

	return count, nil
}

func (fr *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE films
		SET title = $2, year = $3, logline = $4, type = $5, genres = $6,
		    thumbnail_key = $7, trailer_key = $8, full_film_key = $9,
		    status = $10, duration_s = $11, currency = $12,
		    rent_price = $13, rental_hours = $14, buy_price = $15,
		    published_at = $16, views = $17, total_earning = $18,
		    updated_at = $19
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := fr.db.Exec(ctx, query,
		film.ID,
		film.Title,
		film.Year,
		film.Logline,
		film.Type,
		film.Genres,
		film.ThumbnailKey,
		film.TrailerKey,
		film.FullFilmKey,
		film.Status,
		film.DurationSeconds,
		film.Currency,
		film.RentPrice,
		film.RentalHours,
		film.BuyPrice,
		film.PublishedAt,
		film.Views,
		film.TotalEarning,
		film.UpdatedAt,
	)

	if err != nil {
		fr.log.Error("Failed to update film",
			zap.Error(err),
			zap.String("film_id", film.ID.String()),
		)
		return fmt.Errorf("update film %s: %w", film.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found or already deleted", film.ID.String())
	}

	return nil
}

func (fr *filmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE films SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := fr.db.Exec(ctx, query, id)
	if err != nil {
		fr.log.Error("Failed to delete film",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete film %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found", id.String())
	}

	return nil
}
