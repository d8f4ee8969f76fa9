package response

import (
	"time"

	"screenvault/internal/data/entity"
)

type UserResponse struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FullName         string          `json:"full_name"`
	PhoneCountryCode *string         `json:"phone_country_code,omitempty"`
	PhoneNumber      *string         `json:"phone_number,omitempty"`
	Role             entity.UserRole `json:"role"`
	IsAffiliate      bool            `json:"is_affiliate"`
	TermsAgreed      bool            `json:"terms_agreed"`
	ReferralCode     string          `json:"referral_code"`
	DateJoined       time.Time       `json:"date_joined"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		FullName:         user.FullName,
		PhoneCountryCode: user.PhoneCountryCode,
		PhoneNumber:      user.PhoneNumber,
		Role:             user.Role,
		IsAffiliate:      user.IsAffiliate,
		TermsAgreed:      user.TermsAgreed,
		ReferralCode:     user.ReferralCode,
		DateJoined:       user.CreatedAt,
	}
}
