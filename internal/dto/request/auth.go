package request

type SignupRequest struct {
	FullName         string  `json:"full_name" validate:"required,min=1,max=150"`
	Email            string  `json:"email_address" validate:"required,email"`
	Password         string  `json:"password" validate:"required,min=6"`
	ConfirmPassword  string  `json:"confirm_password" validate:"required"`
	Role             string  `json:"role" validate:"required,oneof=filmmaker viewer"`
	TermsAgreed      bool    `json:"terms_agreed"`
	PhoneCountryCode *string `json:"phone_country_code,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	ReferralCode     *string `json:"refer_by,omitempty"`
}

type SigninRequest struct {
	Email    string `json:"email_address" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=filmmaker viewer"`
}

type AdminSigninRequest struct {
	Email    string `json:"email_address" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,uuid"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
