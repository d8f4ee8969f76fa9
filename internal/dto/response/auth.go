package response

import (
	"screenvault/internal/data/entity"
)

type SignupResponse struct {
	ID           string          `json:"id"`
	Role         entity.UserRole `json:"role"`
	ReferralCode string          `json:"referral_code"`
}

type SigninResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	UserID       string          `json:"user_id"`
	Role         entity.UserRole `json:"role"`
	ReferCode    string          `json:"refer_code,omitempty"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
