package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"screenvault/internal/data/entity"
	"screenvault/internal/dto/request"
	"screenvault/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and delivers an OTP", func(t *testing.T) {
		repo := newTestRepo()
		notifier := &fakeNotifier{}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		user := seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		resp, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), resp.UserID)

		require.Len(t, notifier.sent, 1)
		assert.Len(t, notifier.sent[0], 6)

		stored, err := repo.User.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.OTP)
		assert.Equal(t, notifier.sent[0], *stored.OTP)
		require.NotNil(t, stored.OTPExpiresAt)
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), *stored.OTPExpiresAt, 10*time.Second)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		svc := NewResetService(newTestRepo(), &fakeNotifier{}, newTestConfig(), testLogger())

		_, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "nobody@example.com"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "User does not exist.", apperr.Message(err, ""))
	})

	t.Run("keeps the OTP when delivery fails", func(t *testing.T) {
		repo := newTestRepo()
		notifier := &fakeNotifier{sendErr: errors.New("smtp down")}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		user := seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		_, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindDelivery, apperr.KindOf(err))

		stored, err := repo.User.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.OTP)
	})

	t.Run("a re-request supersedes the previous OTP", func(t *testing.T) {
		repo := newTestRepo()
		notifier := &fakeNotifier{}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		resp, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)
		_, err = svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)
		require.Len(t, notifier.sent, 2)

		// Only the latest code verifies
		if notifier.sent[0] != notifier.sent[1] {
			_, err = svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
				UserID: resp.UserID,
				Code:   notifier.sent[0],
			})
			require.Error(t, err)
		}
		_, err = svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: resp.UserID,
			Code:   notifier.sent[1],
		})
		assert.NoError(t, err)
	})
}

func TestVerifyOtp(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeNotifier, ResetService, string) {
		repo := newTestRepo()
		notifier := &fakeNotifier{}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		resp, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)
		return notifier, svc, resp.UserID
	}

	t.Run("returns a secret for the correct code", func(t *testing.T) {
		notifier, svc, userID := setup(t)

		resp, err := svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: userID,
			Code:   notifier.sent[0],
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.SecretKey)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		notifier, svc, userID := setup(t)

		wrong := "000000"
		if notifier.sent[0] == wrong {
			wrong = "000001"
		}

		_, err := svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: userID,
			Code:   wrong,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Invalid OTP.", apperr.Message(err, ""))
	})

	t.Run("rejects an expired code even when correct", func(t *testing.T) {
		repo := newTestRepo()
		notifier := &fakeNotifier{}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		user := seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		_, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)

		stored, err := repo.User.FindByID(ctx, user.ID)
		require.NoError(t, err)
		past := time.Now().Add(-time.Minute)
		stored.OTPExpiresAt = &past
		require.NoError(t, repo.User.Update(ctx, stored))

		_, err = svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: user.ID.String(),
			Code:   notifier.sent[0],
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindExpired, apperr.KindOf(err))
	})

	t.Run("rejects verification without a pending request", func(t *testing.T) {
		repo := newTestRepo()
		svc := NewResetService(repo, &fakeNotifier{}, newTestConfig(), testLogger())

		user := seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		_, err := svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: user.ID.String(),
			Code:   "123456",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindExpired, apperr.KindOf(err))
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	// Runs the full request -> verify -> reset sequence.
	runFlow := func(t *testing.T) (*fakeUserRepo, ResetService, string, string) {
		repo := newTestRepo()
		notifier := &fakeNotifier{}
		svc := NewResetService(repo, notifier, newTestConfig(), testLogger())

		seedUser(repo, "ada@example.com", "secret123", entity.RoleViewer)

		reqResp, err := svc.RequestReset(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"})
		require.NoError(t, err)

		verResp, err := svc.VerifyOtp(ctx, &request.VerifyResetCodeRequest{
			UserID: reqResp.UserID,
			Code:   notifier.sent[0],
		})
		require.NoError(t, err)

		return repo.User.(*fakeUserRepo), svc, reqResp.UserID, verResp.SecretKey
	}

	t.Run("sets the new password and clears reset state", func(t *testing.T) {
		users, svc, userID, secret := runFlow(t)

		err := svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			UserID:          userID,
			SecretKey:       secret,
			NewPassword:     "brandnew123",
			ConfirmPassword: "brandnew123",
		})
		require.NoError(t, err)

		stored, err := users.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Nil(t, stored.OTP)
		assert.Nil(t, stored.OTPExpiresAt)
		assert.Nil(t, stored.ResetSecret)
		assert.False(t, stored.HasOutstandingReset())
	})

	t.Run("rejects mismatched passwords", func(t *testing.T) {
		_, svc, userID, secret := runFlow(t)

		err := svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			UserID:          userID,
			SecretKey:       secret,
			NewPassword:     "brandnew123",
			ConfirmPassword: "different1",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Passwords do not match.", apperr.Message(err, ""))
	})

	t.Run("rejects a stale secret", func(t *testing.T) {
		_, svc, userID, secret := runFlow(t)

		err := svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			UserID:          userID,
			SecretKey:       secret,
			NewPassword:     "brandnew123",
			ConfirmPassword: "brandnew123",
		})
		require.NoError(t, err)

		// The secret was consumed; a second use must fail
		err = svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			UserID:          userID,
			SecretKey:       secret,
			NewPassword:     "another456",
			ConfirmPassword: "another456",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "Invalid secret key or user ID.", apperr.Message(err, ""))
	})

	t.Run("rejects a mismatched user ID", func(t *testing.T) {
		_, svc, _, secret := runFlow(t)

		err := svc.ResetPassword(ctx, &request.ResetPasswordRequest{
			UserID:          "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			SecretKey:       secret,
			NewPassword:     "brandnew123",
			ConfirmPassword: "brandnew123",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
