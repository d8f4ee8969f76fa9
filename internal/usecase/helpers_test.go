package usecase

import (
	"context"
	"fmt"
	"time"

	"screenvault/internal/data/entity"
	"screenvault/internal/data/repository"
	"screenvault/pkg/apperr"
	"screenvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	createErr error
	findErr   error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return apperr.Conflict("The email is already taken.")
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ReferralCode == code && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	for _, u := range f.users {
		if u.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindByIDAndResetSecret(ctx context.Context, id uuid.UUID, secret uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil || u.ResetSecret == nil || *u.ResetSecret != secret {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("update user: not found")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("delete user: not found")
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uuid.UUID]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uuid.UUID]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *entity.RefreshToken) error {
	cp := *token
	f.tokens[token.Token] = &cp
	return nil
}

func (f *fakeRefreshTokenRepo) Find(ctx context.Context, token uuid.UUID) (*entity.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefreshTokenRepo) Delete(ctx context.Context, token uuid.UUID) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

type fakeFilmRepo struct {
	films map[uuid.UUID]*entity.Film
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: make(map[uuid.UUID]*entity.Film)}
}

func (f *fakeFilmRepo) Create(ctx context.Context, film *entity.Film) error {
	cp := *film
	f.films[film.ID] = &cp
	return nil
}

func (f *fakeFilmRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	fl, ok := f.films[id]
	if !ok || fl.DeletedAt != nil {
		return nil, nil
	}
	cp := *fl
	return &cp, nil
}

func (f *fakeFilmRepo) FindAll(ctx context.Context, limit, offset int, status *entity.FilmStatus) ([]*entity.Film, error) {
	var out []*entity.Film
	for _, fl := range f.films {
		if fl.DeletedAt != nil {
			continue
		}
		if status != nil && fl.Status != *status {
			continue
		}
		cp := *fl
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFilmRepo) CountAll(ctx context.Context, status *entity.FilmStatus) (int64, error) {
	var n int64
	for _, fl := range f.films {
		if fl.DeletedAt != nil {
			continue
		}
		if status != nil && fl.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeFilmRepo) Update(ctx context.Context, film *entity.Film) error {
	if _, ok := f.films[film.ID]; !ok {
		return fmt.Errorf("update film: not found")
	}
	cp := *film
	f.films[film.ID] = &cp
	return nil
}

func (f *fakeFilmRepo) Delete(ctx context.Context, id uuid.UUID) error {
	fl, ok := f.films[id]
	if !ok {
		return fmt.Errorf("delete film: not found")
	}
	now := time.Now()
	fl.DeletedAt = &now
	return nil
}

type progressKey struct {
	userID uuid.UUID
	filmID uuid.UUID
}

type fakeProgressRepo struct {
	entries map[progressKey]*entity.WatchProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{entries: make(map[progressKey]*entity.WatchProgress)}
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.WatchProgress) error {
	cp := *progress
	f.entries[progressKey{progress.UserID, progress.FilmID}] = &cp
	return nil
}

func (f *fakeProgressRepo) Find(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchProgress, error) {
	wp, ok := f.entries[progressKey{userID, filmID}]
	if !ok {
		return nil, nil
	}
	cp := *wp
	return &cp, nil
}

func (f *fakeProgressRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchProgress, error) {
	var out []*entity.WatchProgress
	for k, wp := range f.entries {
		if k.userID == userID {
			cp := *wp
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent    []string
	sendErr error
}

func (f *fakeNotifier) SendOTP(ctx context.Context, email, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, code)
	return nil
}

type fakeAssetStore struct {
	presignErr error
	uploads    int
}

func (f *fakeAssetStore) PresignUpload(ctx context.Context, kind string) (string, string, error) {
	if f.presignErr != nil {
		return "", "", f.presignErr
	}
	f.uploads++
	key := fmt.Sprintf("%s/test-%d", kind, f.uploads)
	return key, "https://storage.test/" + key, nil
}

func (f *fakeAssetStore) PresignDownload(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.test/" + key, nil
}

// ---- construction helpers ----

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:          newFakeUserRepo(),
		RefreshToken:  newFakeRefreshTokenRepo(),
		Film:          newFakeFilmRepo(),
		WatchProgress: newFakeProgressRepo(),
	}
}

func newTestConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:            "test-secret",
			ExpiryHours:       1,
			RefreshExpiryDays: 7,
		},
		OTP: utils.OTPConfig{
			ExpiryMinutes: 5,
			Length:        6,
		},
		Referral: utils.ReferralConfig{
			CodeLength:  8,
			MaxAttempts: 10,
		},
	}
}

func seedUser(repo *repository.Repository, email, password string, role entity.UserRole) *entity.User {
	hash, _ := utils.HashPassword(password)
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         role,
		ReferralCode: uuid.NewString()[:8],
		IsActive:     true,
		TermsAgreed:  true,
	}
	_ = repo.User.Create(context.Background(), user)
	return user
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
