package response

type ForgotPasswordResponse struct {
	UserID string `json:"user_id"`
}

type VerifyResetCodeResponse struct {
	SecretKey string `json:"secret_key"`
}
