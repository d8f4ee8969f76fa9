package response

import (
	"time"

	"screenvault/internal/data/entity"
)

type FilmResponse struct {
	ID              string    `json:"id"`
	FilmmakerID     string    `json:"filmmaker_id"`
	Title           string    `json:"title"`
	Year            *int      `json:"year,omitempty"`
	Logline         string    `json:"logline,omitempty"`
	Type            string    `json:"type"`
	Genres          []string  `json:"genres"`
	Status          string    `json:"status"`
	DurationSeconds int       `json:"duration_s"`
	Currency        string    `json:"currency"`
	RentPrice       float64   `json:"rent_price"`
	RentalHours     int       `json:"rental_hours"`
	BuyPrice        float64   `json:"buy_price"`
	Views           int64     `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
}

// FilmUploadResponse carries the created record plus presigned PUT URLs for
// the asset slots requested at upload time.
type FilmUploadResponse struct {
	Film         FilmResponse `json:"film"`
	ThumbnailURL string       `json:"thumbnail_upload_url,omitempty"`
	TrailerURL   string       `json:"trailer_upload_url,omitempty"`
	FullFilmURL  string       `json:"full_film_upload_url,omitempty"`
}

// FilmDetailResponse adds presigned GET URLs for stored assets.
type FilmDetailResponse struct {
	FilmResponse
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	TrailerURL   string     `json:"trailer_url,omitempty"`
	FullFilmURL  string     `json:"full_film_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	// Caller's own watch position, present only for authenticated requests
	Progress *WatchProgressResponse `json:"progress,omitempty"`
}

type WatchProgressResponse struct {
	FilmID          string    `json:"film_id"`
	PositionSeconds int       `json:"position_s"`
	DurationSeconds int       `json:"duration_s"`
	Completed       bool      `json:"completed"`
	Percent         int       `json:"percent"`
	LastWatchedAt   time.Time `json:"last_watched_at"`
}

// Helper converters
func FilmToResponse(film *entity.Film) FilmResponse {
	genres := film.Genres
	if genres == nil {
		genres = []string{}
	}

	return FilmResponse{
		ID:              film.ID.String(),
		FilmmakerID:     film.FilmmakerID.String(),
		Title:           film.Title,
		Year:            film.Year,
		Logline:         film.Logline,
		Type:            string(film.Type),
		Genres:          genres,
		Status:          string(film.Status),
		DurationSeconds: film.DurationSeconds,
		Currency:        film.Currency,
		RentPrice:       film.RentPrice,
		RentalHours:     film.RentalHours,
		BuyPrice:        film.BuyPrice,
		Views:           film.Views,
		CreatedAt:       film.CreatedAt,
	}
}

func ProgressToResponse(wp *entity.WatchProgress) WatchProgressResponse {
	return WatchProgressResponse{
		FilmID:          wp.FilmID.String(),
		PositionSeconds: wp.PositionSeconds,
		DurationSeconds: wp.DurationSeconds,
		Completed:       wp.Completed,
		Percent:         wp.Percent(),
		LastWatchedAt:   wp.LastWatchedAt,
	}
}
