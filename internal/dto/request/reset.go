package request

type ForgotPasswordRequest struct {
	Email string `json:"email_address" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Code   string `json:"verification_code" validate:"required,len=6"`
}

type ResetPasswordRequest struct {
	UserID          string `json:"user_id" validate:"required,uuid"`
	SecretKey       string `json:"secret_key" validate:"required,uuid"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
