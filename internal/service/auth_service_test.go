package service

import (
	"balance_game_backend/internal/config"
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/repository"
	"balance_game_backend/internal/testutil"
	"balance_game_backend/internal/util"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour}}
	return NewAuthService(repository.NewUserRepository(testutil.OpenDB(t)), cfg)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	u := &model.User{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}
	require.NoError(t, svc.Register(u))
	assert.NotEqual(t, "hunter22", u.Password, "password is stored hashed")
	assert.Equal(t, 1, u.Level)

	token, user, err := svc.Login("ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)

	claims, err := util.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.Register(&model.User{Name: "Ada", Email: "ada@example.com", Password: "pw123456"}))
	err := svc.Register(&model.User{Name: "Ada", Email: "ada@example.com", Password: "pw123456"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.Register(&model.User{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}))

	_, _, err := svc.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc := newAuthService(t)
	u := &model.User{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}
	require.NoError(t, svc.Register(u))

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, svc.GetCurrentUser(c))

	util.SetUserInContext(c, &util.Claims{UserID: u.ID, Role: u.Role})
	got := svc.GetCurrentUser(c)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
}
