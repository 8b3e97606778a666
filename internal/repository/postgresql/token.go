package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetByToken implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (auth.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	var rt auth.RefreshToken
	err := q.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = $1
	`, token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.RefreshToken{}, auth.ErrInvalidToken
		}
		return auth.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return rt, nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForUser implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}

	return nil
}

// DeleteExpired implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`); err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	return nil
}

type verificationTokenRepository struct {
	db *database.DB
}

func NewVerificationTokenRepository(db *database.DB) auth.VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

// Create implements auth.VerificationTokenRepository.
func (r *verificationTokenRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO email_verification_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	return nil
}

// GetByToken implements auth.VerificationTokenRepository.
func (r *verificationTokenRepository) GetByToken(ctx context.Context, token string) (auth.VerificationToken, error) {
	q := GetQuerier(ctx, r.db)

	var vt auth.VerificationToken
	err := q.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM email_verification_tokens
		WHERE token = $1
	`, token).Scan(&vt.ID, &vt.UserID, &vt.Token, &vt.ExpiresAt, &vt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.VerificationToken{}, auth.ErrVerificationTokenInvalid
		}
		return auth.VerificationToken{}, fmt.Errorf("failed to get verification token: %w", err)
	}

	return vt, nil
}

// Delete implements auth.VerificationTokenRepository.
func (r *verificationTokenRepository) Delete(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM email_verification_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}

	return nil
}
