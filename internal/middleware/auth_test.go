package middleware

import (
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/", AuthMiddleware(secret))
	auth.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).UserID)
	})
	auth.GET("/teachers", RoleMiddleware(model.Teacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func token(t *testing.T, role model.UserRole, key string, ttl time.Duration) string {
	t.Helper()
	tok, err := util.GenerateJWT(&model.User{ID: "u-1", Role: role, Email: "u@example.com"}, key, ttl)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name string
		tok  string
		want int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", token(t, model.Student, "other-secret", time.Hour), http.StatusUnauthorized},
		{"expired", token(t, model.Student, secret, -time.Minute), http.StatusUnauthorized},
		{"valid", token(t, model.Student, secret, time.Hour), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.tok)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "u-1", w.Body.String())
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusForbidden, do(r, "/teachers", token(t, model.Student, secret, time.Hour)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/teachers", token(t, model.Teacher, secret, time.Hour)).Code)
}
