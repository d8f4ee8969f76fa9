package usecase

import (
	"context"
	"crypto/rand"
	"fmt"

	"screenvault/internal/data/entity"
	"screenvault/internal/data/repository"
	"screenvault/pkg/apperr"
)

const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// resolveReferralCode maps a referral code supplied at signup to the
// referring user. Empty input is the common case and resolves to no
// referrer. Lookup is case-sensitive; codes are stored uppercase.
//
// Resolution must run before the new user's own code is generated, which
// is what makes self-referral structurally impossible.
func resolveReferralCode(ctx context.Context, userRepo repository.UserRepository, code *string) (*entity.User, error) {
	if code == nil || *code == "" {
		return nil, nil
	}

	referrer, err := userRepo.FindByReferralCode(ctx, *code)
	if err != nil {
		return nil, apperr.Internal("Failed to resolve referral code", err)
	}
	if referrer == nil {
		return nil, apperr.Validation("Invalid referral code.")
	}

	return referrer, nil
}

// generateReferralCode mints a unique uppercase-alphanumeric code. Collisions
// are retried up to maxAttempts; exhausting the budget fails loudly rather
// than looping forever.
func generateReferralCode(ctx context.Context, userRepo repository.UserRepository, length, maxAttempts int) (string, error) {
	if length <= 0 {
		length = 8
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := randomReferralCode(length)
		if err != nil {
			return "", apperr.Internal("Failed to generate referral code", err)
		}

		exists, err := userRepo.ExistsByReferralCode(ctx, code)
		if err != nil {
			return "", apperr.Internal("Failed to check referral code", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", apperr.Wrap(apperr.KindConflict, "Could not allocate a unique referral code",
		fmt.Errorf("referral code space exhausted after %d attempts", maxAttempts))
}

func randomReferralCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralCharset[int(b)%len(referralCharset)]
	}
	return string(buf), nil
}
