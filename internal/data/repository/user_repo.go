package repository

import (
	"context"
	"errors"
	"fmt"

	"screenvault/internal/data/entity"
	"screenvault/pkg/apperr"
	"screenvault/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByReferralCode(ctx context.Context, code string) (*entity.User, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)
	FindByIDAndResetSecret(ctx context.Context, id uuid.UUID, secret uuid.UUID) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, full_name, password, role,
	       phone_country_code, phone_number,
	       otp, otp_expires_at, reset_secret,
	       referral_code, refer_by,
	       is_affiliate, is_active, is_staff, terms_agreed,
	       created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.PhoneCountryCode,
		&user.PhoneNumber,
		&user.OTP,
		&user.OTPExpiresAt,
		&user.ResetSecret,
		&user.ReferralCode,
		&user.ReferBy,
		&user.IsAffiliate,
		&user.IsActive,
		&user.IsStaff,
		&user.TermsAgreed,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password, role,
		                  phone_country_code, phone_number,
		                  referral_code, refer_by,
		                  is_affiliate, is_active, is_staff, terms_agreed,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.PhoneCountryCode,
		user.PhoneNumber,
		user.ReferralCode,
		user.ReferBy,
		user.IsAffiliate,
		user.IsActive,
		user.IsStaff,
		user.TermsAgreed,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Unique violations race past the pre-insert existence checks.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			ur.log.Warn("Unique violation on user insert",
				zap.String("constraint", pgErr.ConstraintName),
				zap.String("email", user.Email),
			)
			return apperr.Wrap(apperr.KindConflict, "The email is already taken.", err)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// FindByReferralCode matches the immutable referral code case-sensitively.
func (ur *userRepository) FindByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE referral_code = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by referral code",
			zap.Error(err),
			zap.String("referral_code", code),
		)
		return nil, fmt.Errorf("find user by referral code %s: %w", code, err)
	}

	return user, nil
}

func (ur *userRepository) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE referral_code = $1)`

	var exists bool
	err := ur.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		ur.log.Error("Failed to check referral code existence",
			zap.Error(err),
			zap.String("referral_code", code),
		)
		return false, fmt.Errorf("check referral code %s: %w", code, err)
	}

	return exists, nil
}

// FindByIDAndResetSecret is the compound lookup the reset flow uses: both
// the id and the stored secret must match exactly.
func (ur *userRepository) FindByIDAndResetSecret(ctx context.Context, id uuid.UUID, secret uuid.UUID) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND reset_secret = $2 AND deleted_at IS NULL
	`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id, secret))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID and reset secret",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID and secret %s: %w", id.String(), err)
	}

	return user, nil
}

// FindAll retrieves paginated list of users
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int64
	err := ur.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		ur.log.Error("Database error counting users",
			zap.Error(err),
		)
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

// Update writes every mutable column back. referral_code is deliberately
// absent: it is generated once and never regenerated.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, full_name = $3, password = $4, role = $5,
		    phone_country_code = $6, phone_number = $7,
		    otp = $8, otp_expires_at = $9, reset_secret = $10,
		    refer_by = $11,
		    is_affiliate = $12, is_active = $13, is_staff = $14, terms_agreed = $15,
		    updated_at = $16
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.PhoneCountryCode,
		user.PhoneNumber,
		user.OTP,
		user.OTPExpiresAt,
		user.ResetSecret,
		user.ReferBy,
		user.IsAffiliate,
		user.IsActive,
		user.IsStaff,
		user.TermsAgreed,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", user.ID.String())
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
