package usecase

import (
	"context"
	"fmt"
	"time"

	"screenvault/internal/data/repository"
	"screenvault/internal/dto/request"
	"screenvault/internal/dto/response"
	"screenvault/internal/notify"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResetService runs the three-step password recovery flow:
// request (OTP issued) -> verify (secret issued) -> reset (password stored).
// All state lives on the user row; a re-request supersedes any outstanding
// OTP because only the latest stored value is ever checked.
type ResetService interface {
	RequestReset(ctx context.Context, req *request.ForgotPasswordRequest) (*response.ForgotPasswordResponse, error)
	VerifyOtp(ctx context.Context, req *request.VerifyResetCodeRequest) (*response.VerifyResetCodeResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type resetService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	config   *utils.Config
	log      *zap.Logger
}

func NewResetService(
	repo *repository.Repository,
	notifier notify.Notifier,
	config *utils.Config,
	log *zap.Logger,
) ResetService {
	return &resetService{
		repo:     repo,
		notifier: notifier,
		config:   config,
		log:      log,
	}
}

func (s *resetService) RequestReset(ctx context.Context, req *request.ForgotPasswordRequest) (*response.ForgotPasswordResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Email is required.")
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Internal("Failed to process OTP", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User does not exist.")
	}

	// 3. Generate OTP and stamp expiry
	otp := utils.GenerateOTP(s.config.OTP.Length)
	expiresAt := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	user.OTP = &otp
	user.OTPExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store OTP", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Internal("Failed to process OTP", err)
	}

	s.log.Info("Reset OTP issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt),
	)

	// 4. Deliver. The OTP stays persisted on failure; a later re-request
	// simply supersedes it.
	if err := s.notifier.SendOTP(ctx, user.Email, otp); err != nil {
		s.log.Error("Failed to deliver OTP", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Wrap(apperr.KindDelivery,
			"Failed to send OTP email. Please try again later.", err)
	}

	return &response.ForgotPasswordResponse{UserID: user.ID.String()}, nil
}

func (s *resetService) VerifyOtp(ctx context.Context, req *request.VerifyResetCodeRequest) (*response.VerifyResetCodeResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Both User ID and verification code are required.")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperr.Validation("Invalid user ID.")
	}

	// 2. Load user
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for OTP verify", zap.Error(err))
		return nil, apperr.Internal("Failed to verify OTP", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User does not exist.")
	}

	// 3. Expiry check comes first: an expired code fails even when correct
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return nil, apperr.Expired("Verification code has expired.")
	}

	// 4. Compare codes. No attempt counter or lockout is kept here.
	if user.OTP == nil || *user.OTP != req.Code {
		s.log.Warn("Invalid OTP submitted", zap.String("user_id", user.ID.String()))
		return nil, apperr.Validation("Invalid OTP.")
	}

	// 5. Issue the one-time reset secret
	secret := utils.GenerateResetSecret()
	user.ResetSecret = &secret
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store reset secret", zap.Error(err))
		return nil, apperr.Internal("Failed to verify OTP", err)
	}

	s.log.Info("Reset OTP verified", zap.String("user_id", user.ID.String()))

	return &response.VerifyResetCodeResponse{SecretKey: secret.String()}, nil
}

func (s *resetService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(errs)))
	}

	if req.NewPassword != req.ConfirmPassword {
		return apperr.Validation("Passwords do not match.")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperr.Validation("Invalid user ID.")
	}
	secret, err := uuid.Parse(req.SecretKey)
	if err != nil {
		return apperr.NotFound("Invalid secret key or user ID.")
	}

	// 2. Both the id and the stored secret must match
	user, err := s.repo.User.FindByIDAndResetSecret(ctx, userID, secret)
	if err != nil {
		s.log.Error("Failed to find user by reset secret", zap.Error(err))
		return apperr.Internal("Failed to reset password", err)
	}
	if user == nil {
		return apperr.NotFound("Invalid secret key or user ID.")
	}

	// 3. Store the new password
	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return apperr.Internal("Failed to reset password", err)
	}

	// 4. Invalidate the whole reset state so neither the OTP nor the
	// secret can be replayed
	user.PasswordHash = hashed
	user.OTP = nil
	user.OTPExpiresAt = nil
	user.ResetSecret = nil
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store reset password", zap.Error(err))
		return apperr.Internal("Failed to reset password", err)
	}

	s.log.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}
