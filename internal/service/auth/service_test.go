package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/jwt"
)

func userContext(t *testing.T, account user.User) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     account.ID,
		"email":       account.Email,
		"employee_id": account.EmployeeID,
		"role":        string(account.Role),
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo(accounts ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*user.User)}
	for i := range accounts {
		account := accounts[i]
		f.users[account.ID] = &account
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	newUser.ID = uuid.NewString()
	f.users[newUser.ID] = &newUser
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return *u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID == employeeID {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrEmployeeID(_ context.Context, email, employeeID string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) VerifyEmail(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.EmailVerified = true
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]profile.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByEmployeeID(_ context.Context, employeeID string) (profile.Profile, error) {
	for _, p := range f.profiles {
		if p.EmployeeID == employeeID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]profile.Profile, error) { return nil, nil }

func (f *fakeProfileRepo) UpdatePersonal(_ context.Context, _ profile.UpdatePersonalRequest) error {
	return nil
}

func (f *fakeProfileRepo) UpdateJob(_ context.Context, _ profile.UpdateJobRequest) error {
	return nil
}

func (f *fakeProfileRepo) DeleteByEmployeeID(_ context.Context, _ string) error { return nil }

type fakeRefreshTokenRepo struct {
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*auth.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	f.tokens[token] = &auth.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeRefreshTokenRepo) GetByToken(_ context.Context, token string) (auth.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return auth.RefreshToken{}, auth.ErrInvalidToken
	}
	return *rt, nil
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	rt, ok := f.tokens[token]
	if !ok {
		return auth.ErrInvalidToken
	}
	rt.Revoked = true
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	for _, rt := range f.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error { return nil }

func newTestAuthService(accounts ...user.User) (*AuthServiceImpl, *fakeRefreshTokenRepo) {
	refreshTokens := newFakeRefreshTokenRepo()
	svc := &AuthServiceImpl{
		UserRepository:    newFakeUserRepo(accounts...),
		ProfileRepository: &fakeProfileRepo{profiles: make(map[string]profile.Profile)},
		refreshTokens:     refreshTokens,
		jwtService:        jwt.NewJWTService("test-secret", "1h", "168h"),
	}
	return svc, refreshTokens
}

func testAccount(password string) user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return user.User{
		ID:           uuid.NewString(),
		EmployeeID:   "EMP-001",
		Email:        "emp1@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
	}
}

func TestLogin(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, _ := newTestAuthService(account)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "emp1@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(testAccount("s3cretpass"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "emp1@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(testAccount("s3cretpass"))

	// Same error as a bad password so the endpoint never leaks which
	// emails exist
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, refreshTokens := newTestAuthService(account)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "emp1@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The consumed token is revoked and cannot be replayed
	old, err := refreshTokens.GetByToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, old.Revoked)

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshExpiredToken(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, refreshTokens := newTestAuthService(account)

	err := refreshTokens.Create(context.Background(), account.ID, "stale-token", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "stale-token")
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _ := newTestAuthService(testAccount("s3cretpass"))

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, refreshTokens := newTestAuthService(account)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "emp1@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	stored, err := refreshTokens.GetByToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
}

func TestMe(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, _ := newTestAuthService(account)

	_, err := svc.ProfileRepository.Create(context.Background(), profile.Profile{
		UserID:     account.ID,
		EmployeeID: account.EmployeeID,
		FirstName:  "Ana",
		LastName:   "Putri",
	})
	require.NoError(t, err)

	resp, err := svc.Me(userContext(t, account))
	require.NoError(t, err)

	assert.Equal(t, account.Email, resp.User.Email)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Ana", resp.Profile.FirstName)
}

func TestMeWithoutProfile(t *testing.T) {
	account := testAccount("s3cretpass")
	svc, _ := newTestAuthService(account)

	resp, err := svc.Me(userContext(t, account))
	require.NoError(t, err)
	assert.Nil(t, resp.Profile)
}

func TestMeWithoutClaims(t *testing.T) {
	svc, _ := newTestAuthService(testAccount("s3cretpass"))

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		EmployeeID: "x",
		Email:      "not-an-email",
		Password:   "short",
	})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(testAccount("s3cretpass"))

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		EmployeeID: "EMP-002",
		Email:      "emp1@example.com",
		Password:   "s3cretpass",
		FirstName:  "Ana",
		LastName:   "Putri",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}
