package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/email"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/jwt"
	"github.com/peoplebase/hrm-backend-go/internal/repository/postgresql"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

const verificationTokenTTL = 24 * time.Hour

type AuthServiceImpl struct {
	db  *database.DB
	cfg *config.Config
	user.UserRepository
	profile.ProfileRepository
	refreshTokens      auth.RefreshTokenRepository
	verificationTokens auth.VerificationTokenRepository
	jwtService         jwt.Service
	emailService       email.EmailService
}

func NewAuthService(
	db *database.DB,
	cfg *config.Config,
	userRepo user.UserRepository,
	profileRepo profile.ProfileRepository,
	refreshTokens auth.RefreshTokenRepository,
	verificationTokens auth.VerificationTokenRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		cfg:                cfg,
		UserRepository:     userRepo,
		ProfileRepository:  profileRepo,
		refreshTokens:      refreshTokens,
		verificationTokens: verificationTokens,
		jwtService:         jwtService,
		emailService:       emailService,
	}
}

// Register implements auth.AuthService. The account, its empty profile and the
// verification token are created in one transaction so a half-registered user
// can never exist.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	exists, err := s.UserRepository.ExistsByEmailOrEmployeeID(ctx, req.Email, req.EmployeeID)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := randomToken()
	if err != nil {
		return auth.RegisterResponse{}, err
	}
	tokenExpiresAt := time.Now().Add(verificationTokenTTL)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.UserRepository.Create(txCtx, user.User{
			EmployeeID:   req.EmployeeID,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         role,
		})
		if err != nil {
			return err
		}

		_, err = s.ProfileRepository.Create(txCtx, profile.Profile{
			UserID:         created.ID,
			EmployeeID:     created.EmployeeID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			EmploymentType: profile.EmploymentFullTime,
		})
		if err != nil {
			return err
		}

		return s.verificationTokens.Create(txCtx, created.ID, verificationToken, tokenExpiresAt)
	})
	if err != nil {
		// The pre-check races with concurrent registrations; the unique
		// constraints are authoritative.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_employee_id_key" {
				return auth.RegisterResponse{}, user.ErrEmployeeIDExists
			}
			return auth.RegisterResponse{}, user.ErrUserEmailExists
		}
		return auth.RegisterResponse{}, fmt.Errorf("failed to register user: %w", err)
	}

	verificationLink := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.App.FrontendURL, verificationToken)
	if err := s.emailService.SendVerification(
		created.Email,
		req.FirstName+" "+req.LastName,
		verificationLink,
		tokenExpiresAt.Format(time.RFC1123),
	); err != nil {
		// Registration already committed; the token can be re-sent later
		return auth.RegisterResponse{}, fmt.Errorf("failed to send verification email: %w", err)
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(created.ID, created.Email, created.EmployeeID, created.Role)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RegisterResponse{
		User: user.ToUserResponse(created),
		Token: auth.TokenResponse{
			AccessToken:          accessToken,
			AccessTokenExpiresIn: accessExp,
		},
	}, nil
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, account)
}

// Refresh implements auth.AuthService. The old refresh token is revoked and a
// fresh pair issued, so a stolen token stops working after its first use.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if stored.Revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	account, err := s.UserRepository.GetByID(ctx, stored.UserID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user for refresh: %w", err)
	}

	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokenPair(ctx, account)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.refreshTokens.GetByToken(ctx, refreshToken); err != nil {
		return err
	}
	return s.refreshTokens.Revoke(ctx, refreshToken)
}

// VerifyEmail implements auth.AuthService.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	if req.Token == "" {
		return auth.ErrVerificationTokenInvalid
	}

	stored, err := s.verificationTokens.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.ErrVerificationTokenInvalid
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.UserRepository.VerifyEmail(txCtx, stored.UserID); err != nil {
			return err
		}
		return s.verificationTokens.Delete(txCtx, req.Token)
	})
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	account, err := s.UserRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	resp := auth.MeResponse{User: user.ToUserResponse(account)}

	p, err := s.ProfileRepository.GetByUserID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return resp, nil
		}
		return auth.MeResponse{}, err
	}

	pr := profile.ToProfileResponse(p)
	resp.Profile = &pr

	return resp, nil
}

func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, account user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.EmployeeID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Create(ctx, account.ID, refreshToken, time.Unix(refreshExp, 0)); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
