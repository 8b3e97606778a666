package auth

import "context"

type AuthService interface {
	// Register creates the account and its empty profile in one transaction
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// VerifyEmail marks the account verified using the emailed token
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error

	// Me returns the authenticated account and its profile
	Me(ctx context.Context) (MeResponse, error)
}
