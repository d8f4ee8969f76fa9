package usecase

import (
	"context"
	"time"

	"screenvault/internal/data/repository"
	"screenvault/internal/dto/request"
	"screenvault/internal/dto/response"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal("Failed to get profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User does not exist.")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 2. Load current state
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal("Failed to update profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User does not exist.")
	}

	// 3. Apply partial update
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneCountryCode != nil || req.PhoneNumber != nil {
		// The pair validates as a unit; supplying one half without the
		// other is rejected inside normalizePhonePair.
		code := req.PhoneCountryCode
		number := req.PhoneNumber
		if code == nil {
			code = user.PhoneCountryCode
		}
		if number == nil {
			number = user.PhoneNumber
		}

		normCode, normNumber, err := normalizePhonePair(code, number)
		if err != nil {
			return nil, err
		}
		user.PhoneCountryCode = normCode
		user.PhoneNumber = normNumber
	}
	user.UpdatedAt = time.Now()

	// 4. Persist
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Internal("Failed to update profile", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}

	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, apperr.Internal("Failed to get users", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Internal("Failed to get users", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return apperr.Internal("Failed to delete user", err)
	}
	if user == nil {
		return apperr.NotFound("User does not exist.")
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID.String()))
		return apperr.Internal("Failed to delete user", err)
	}

	// Revoke every session the deleted account still holds.
	if err := s.repo.RefreshToken.DeleteAllForUser(ctx, userID); err != nil {
		s.log.Warn("Failed to revoke refresh tokens", zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("User deleted", zap.String("user_id", userID.String()))
	return nil
}
