package entity

import (
	"time"

	"github.com/google/uuid"
)

// WatchProgress tracks how far a user is into a film. One row per
// (user, film) pair.
type WatchProgress struct {
	BaseSimple
	UserID          uuid.UUID `db:"user_id"`
	FilmID          uuid.UUID `db:"film_id"`
	PositionSeconds int       `db:"position_s"`
	DurationSeconds int       `db:"duration_s"`
	Completed       bool      `db:"completed"`
	LastWatchedAt   time.Time `db:"last_watched_at"`
}

// Percent renders progress as 0-100. A completed film is always 100;
// an unfinished one is capped at 99 so the UI never shows a false finish.
func (wp *WatchProgress) Percent() int {
	if wp.DurationSeconds == 0 {
		return 0
	}
	if wp.Completed {
		return 100
	}
	p := wp.PositionSeconds * 100 / wp.DurationSeconds
	if p > 99 {
		return 99
	}
	if p < 0 {
		return 0
	}
	return p
}
