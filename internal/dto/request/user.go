package request

// UpdateProfileRequest is a partial update: nil fields are left untouched.
// Email, id, role and referral code are read-only through this path.
type UpdateProfileRequest struct {
	FullName         *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=150"`
	PhoneCountryCode *string `json:"phone_country_code,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
}
