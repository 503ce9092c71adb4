package service_test

import (
	"context"
	"testing"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/config"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/middleware"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (service.AuthService, *stubUserRepo, *config.Config) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(users, cfg), users, cfg
}

func seedUser(r *stubUserRepo, username, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	r.users[u.ID] = u
	return u
}

func TestLogin_IssuesAccessAndRefreshTokens(t *testing.T) {
	svc, users, cfg := buildAuthSvc()
	seedUser(users, "ravi", "counter123", model.RoleCashier)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ravi", Password: "counter123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleCashier, resp.User.Role)

	// access token carries the right claims and type
	claims := &middleware.JWTClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "ravi", claims.Username)
	assert.Equal(t, model.RoleCashier, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	seedUser(users, "ravi", "counter123", model.RoleCashier)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ravi", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeAuthentication, apiCode(t, err))
}

func TestLogin_UnknownOrInactiveUser(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	u := seedUser(users, "gone", "pw123456", model.RoleManager)
	u.Active = false

	for _, username := range []string{"nobody", "gone"} {
		_, err := svc.Login(context.Background(), dto.LoginRequest{Username: username, Password: "pw123456"})
		require.Error(t, err, "login as %q", username)
		assert.Equal(t, apierror.CodeAuthentication, apiCode(t, err))
	}
}

func TestRefresh_RotatesTokens(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	seedUser(users, "meena", "pw123456", model.RoleManager)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "meena", Password: "pw123456"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "meena", refreshed.User.Username)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	seedUser(users, "meena", "pw123456", model.RoleManager)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "meena", Password: "pw123456"})
	require.NoError(t, err)

	// an access token must not pass as a refresh token
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeAuthentication, apiCode(t, err))
}

func TestRefresh_DisabledAccount(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	u := seedUser(users, "meena", "pw123456", model.RoleManager)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "meena", Password: "pw123456"})
	require.NoError(t, err)

	u.Active = false
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeAuthentication, apiCode(t, err))
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, users, _ := buildAuthSvc()

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "newcashier",
		Name:     "New Cashier",
		Password: "secret99",
		Role:     model.RoleCashier,
	})
	require.NoError(t, err)

	stored := users.users[uuid.MustParse(resp.ID)]
	assert.NotEqual(t, "secret99", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret99")))
}

func TestDeactivateUser(t *testing.T) {
	svc, users, _ := buildAuthSvc()
	u := seedUser(users, "leaving", "pw123456", model.RoleCashier)

	require.NoError(t, svc.DeactivateUser(context.Background(), u.ID))
	assert.False(t, users.users[u.ID].Active)

	// deactivated accounts can no longer log in
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "leaving", Password: "pw123456"})
	require.Error(t, err)
}
