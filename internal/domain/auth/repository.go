package auth

import (
	"context"
	"time"
)

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// VerificationToken is the emailed token backing the email_verified flag.
type VerificationToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type VerificationTokenRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (VerificationToken, error)
	Delete(ctx context.Context, token string) error
}
