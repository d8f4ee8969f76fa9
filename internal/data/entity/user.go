package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleFilmmaker UserRole = "filmmaker"
	RoleViewer    UserRole = "viewer"
)

// ValidSignupRole reports whether role is one a user may self-assign.
// Admin accounts are seeded, never registered.
func ValidSignupRole(role UserRole) bool {
	return role == RoleFilmmaker || role == RoleViewer
}

type User struct {
	Base
	Email        string   `db:"email"`
	FullName     string   `db:"full_name"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`

	// Phone fields are stored normalized: both set or both nil.
	PhoneCountryCode *string `db:"phone_country_code"`
	PhoneNumber      *string `db:"phone_number"`

	// Password-reset state. OTP and ResetSecret are transient: populated by
	// the reset flow and cleared when a reset completes.
	OTP          *string    `db:"otp"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`
	ResetSecret  *uuid.UUID `db:"reset_secret"`

	// ReferralCode is generated once at first save and never regenerated.
	// ReferBy points at the referring user; no acyclicity is enforced.
	ReferralCode string     `db:"referral_code"`
	ReferBy      *uuid.UUID `db:"refer_by"`

	IsAffiliate bool `db:"is_affiliate"`
	IsActive    bool `db:"is_active"`
	IsStaff     bool `db:"is_staff"`
	TermsAgreed bool `db:"terms_agreed"`
}

// HasOutstandingReset reports whether a reset request has been issued and
// not yet consumed or superseded.
func (u *User) HasOutstandingReset() bool {
	return u.OTP != nil && u.OTPExpiresAt != nil
}
