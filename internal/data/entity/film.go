package entity

import (
	"time"

	"github.com/google/uuid"
)

type FilmStatus string

const (
	FilmStatusReview    FilmStatus = "review"
	FilmStatusPublished FilmStatus = "published"
	FilmStatusRejected  FilmStatus = "rejected"
)

type FilmType string

const (
	FilmTypeMovie       FilmType = "movie"
	FilmTypeDrama       FilmType = "drama"
	FilmTypeShort       FilmType = "short"
	FilmTypeDocumentary FilmType = "documentary"
	FilmTypeSeries      FilmType = "series"
)

type Film struct {
	Base
	FilmmakerID uuid.UUID `db:"filmmaker_id"`
	Title       string    `db:"title"`
	Year        *int      `db:"year"`
	Logline     string    `db:"logline"`
	Type        FilmType  `db:"type"`
	Genres      []string  `db:"genres"`

	// Object-store keys; the asset bytes live in blob storage, not here.
	ThumbnailKey *string `db:"thumbnail_key"`
	TrailerKey   *string `db:"trailer_key"`
	FullFilmKey  *string `db:"full_film_key"`

	Status          FilmStatus `db:"status"`
	DurationSeconds int        `db:"duration_s"`

	Currency    string  `db:"currency"`
	RentPrice   float64 `db:"rent_price"`
	RentalHours int     `db:"rental_hours"`
	BuyPrice    float64 `db:"buy_price"`

	PublishedAt  *time.Time `db:"published_at"`
	Views        int64      `db:"views"`
	TotalEarning float64    `db:"total_earning"`
}

// Publish moves the film out of review and stamps the publish time.
func (f *Film) Publish(now time.Time) {
	f.Status = FilmStatusPublished
	f.PublishedAt = &now
}
