package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side row backing a refresh credential.
// Tokens are rotated on every use: the old row is deleted and a new one
// inserted.
type RefreshToken struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     uuid.UUID `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}
