package usecase

import (
	"context"
	"fmt"
	"time"

	"screenvault/internal/auth"
	"screenvault/internal/data/entity"
	"screenvault/internal/data/repository"
	"screenvault/internal/dto/request"
	"screenvault/internal/dto/response"
	"screenvault/internal/phone"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	Signin(ctx context.Context, req *request.SigninRequest) (*response.SigninResponse, error)
	AdminSignin(ctx context.Context, req *request.AdminSigninRequest) (*response.SigninResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(errs)))
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("Passwords do not match.")
	}

	if !req.TermsAgreed {
		return nil, apperr.Validation("You must agree to the Terms of Service.")
	}

	// Admin accounts are seeded, never registered
	role := entity.UserRole(req.Role)
	if !entity.ValidSignupRole(role) {
		return nil, apperr.Validation("Role must be filmmaker or viewer.")
	}

	// 2. Normalize phone pair: both present or both absent
	phoneCode, phoneNumber, err := normalizePhonePair(req.PhoneCountryCode, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	// 3. Check email is not taken
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Internal("Failed to check email", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("The email is already taken.")
	}

	// 4. Resolve referral before generating the new user's own code
	referrer, err := resolveReferralCode(ctx, s.repo.User, req.ReferralCode)
	if err != nil {
		return nil, err
	}

	// 5. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal("Failed to process password", err)
	}

	// 6. Generate the user's own referral code
	referralCode, err := generateReferralCode(ctx, s.repo.User,
		s.config.Referral.CodeLength, s.config.Referral.MaxAttempts)
	if err != nil {
		s.log.Error("Failed to generate referral code", zap.Error(err))
		return nil, err
	}

	// 7. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:            req.Email,
		FullName:         req.FullName,
		PasswordHash:     hashedPassword,
		Role:             role,
		PhoneCountryCode: phoneCode,
		PhoneNumber:      phoneNumber,
		ReferralCode:     referralCode,
		IsActive:         true,
		TermsAgreed:      req.TermsAgreed,
	}
	if referrer != nil {
		id := referrer.ID
		user.ReferBy = &id
	}

	// 8. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Internal("Failed to create account", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return &response.SignupResponse{
		ID:           user.ID.String(),
		Role:         user.Role,
		ReferralCode: user.ReferralCode,
	}, nil
}

func (s *authService) Signin(ctx context.Context, req *request.SigninRequest) (*response.SigninResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signin validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(errs)))
	}

	// 2. Check credentials
	user, err := s.checkCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Requested role must match the account's role
	if user.Role != entity.UserRole(req.Role) {
		s.log.Warn("Role mismatch on signin",
			zap.String("user_id", user.ID.String()),
			zap.String("requested_role", req.Role),
		)
		return nil, apperr.Auth("Role mismatch")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Your account is inactive.")
	}

	// 4. Issue token pair
	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &response.SigninResponse{
		AccessToken:  pair.access,
		RefreshToken: pair.refresh,
		UserID:       user.ID.String(),
		Role:         user.Role,
		ReferCode:    user.ReferralCode,
	}, nil
}

func (s *authService) AdminSignin(ctx context.Context, req *request.AdminSigninRequest) (*response.SigninResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin signin validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(errs)))
	}

	user, err := s.checkCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if !user.IsStaff {
		s.log.Warn("Non-staff admin signin attempt", zap.String("user_id", user.ID.String()))
		return nil, apperr.Forbidden("You are not authorized to access this resource.")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Your account is inactive.")
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin signed in", zap.String("user_id", user.ID.String()))

	return &response.SigninResponse{
		AccessToken:  pair.access,
		RefreshToken: pair.refresh,
		UserID:       user.ID.String(),
		Role:         user.Role,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Refresh token is required.")
	}

	token, err := uuid.Parse(req.RefreshToken)
	if err != nil {
		return nil, apperr.Auth("Invalid or expired refresh token.")
	}

	stored, err := s.repo.RefreshToken.Find(ctx, token)
	if err != nil {
		s.log.Error("Failed to look up refresh token", zap.Error(err))
		return nil, apperr.Internal("Failed to refresh token", err)
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, apperr.Auth("Invalid or expired refresh token.")
	}

	user, err := s.repo.User.FindByID(ctx, stored.UserID)
	if err != nil {
		s.log.Error("Failed to load user for refresh", zap.Error(err))
		return nil, apperr.Internal("Failed to refresh token", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperr.Auth("Invalid or expired refresh token.")
	}

	// Rotate: the presented token is consumed, a new one takes its place.
	if err := s.repo.RefreshToken.Delete(ctx, token); err != nil {
		s.log.Error("Failed to rotate refresh token", zap.Error(err))
		return nil, apperr.Internal("Failed to refresh token", err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &response.RefreshResponse{
		AccessToken:  pair.access,
		RefreshToken: pair.refresh,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(errs)))
	}

	if req.NewPassword != req.ConfirmPassword {
		return apperr.Validation("New passwords do not match.")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user for password change", zap.Error(err))
		return apperr.Internal("Failed to change password", err)
	}
	if user == nil {
		return apperr.NotFound("User does not exist.")
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperr.Validation("Invalid old password.")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return apperr.Internal("Failed to change password", err)
	}

	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store new password", zap.Error(err))
		return apperr.Internal("Failed to change password", err)
	}

	s.log.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

type tokenPair struct {
	access  string
	refresh string
}

func (s *authService) checkCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, apperr.Internal("Failed to find user", err)
	}

	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", email))
		return nil, apperr.Auth("Invalid credentials.")
	}

	return user, nil
}

// issueTokenPair mints a signed access token and a server-stored refresh
// token row for the user.
func (s *authService) issueTokenPair(ctx context.Context, user *entity.User) (*tokenPair, error) {
	access, err := auth.GenerateToken(
		user.ID.String(),
		string(user.Role),
		[]byte(s.config.JWT.Secret),
		time.Duration(s.config.JWT.ExpiryHours)*time.Hour,
	)
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err))
		return nil, apperr.Internal("Failed to create session", err)
	}

	now := time.Now()
	refresh := &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.JWT.RefreshExpiryDays) * 24 * time.Hour),
	}

	if err := s.repo.RefreshToken.Create(ctx, refresh); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err))
		return nil, apperr.Internal("Failed to create session", err)
	}

	return &tokenPair{
		access:  access,
		refresh: refresh.Token.String(),
	}, nil
}

// normalizePhonePair enforces the both-or-neither invariant and runs the
// pair through the numbering-plan validator. The same path serves signup
// and profile update so stored values are canonical either way.
func normalizePhonePair(countryCode, number *string) (*string, *string, error) {
	hasCode := countryCode != nil && *countryCode != ""
	hasNumber := number != nil && *number != ""

	if !hasCode && !hasNumber {
		return nil, nil, nil
	}
	if hasCode != hasNumber {
		return nil, nil, apperr.Validation("Phone country code and number must be provided together.")
	}

	code, national, err := phone.Normalize(*countryCode, *number)
	if err != nil {
		return nil, nil, err
	}

	return &code, &national, nil
}
