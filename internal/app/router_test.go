package app

import (
	"balance_game_backend/internal/config"
	"balance_game_backend/internal/game"
	"balance_game_backend/internal/testutil"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type account struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"userId"`
		XP    int    `json:"xp"`
		Level int    `json:"level"`
	} `json:"user"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: "test"},
		JWT:       config.JWTConfig{Secret: "router-test-secret", ExpireTime: time.Hour},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Game:      config.GameSettings{ConfigKey: "default", Seed: 7},
	}
	return Build(cfg, testutil.OpenDB(t), nil)
}

func call(t *testing.T, a *App, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func signup(t *testing.T, a *App, name, email, role string) account {
	t.Helper()
	w, env := call(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "password123", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var acc account
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	return acc
}

func TestRouter_GameFlow(t *testing.T) {
	a := newTestApp(t)
	player := signup(t, a, "Ada", "ada@example.com", "student")
	assert.Equal(t, 0, player.User.XP)
	assert.Equal(t, 1, player.User.Level)

	w, _ := call(t, a, http.MethodGet, "/api/game/problem", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := call(t, a, http.MethodGet, "/api/game/problem", player.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var problem struct {
		ID      string `json:"problemId"`
		Target  int    `json:"target"`
		Options []int  `json:"options"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &problem))
	require.Len(t, problem.Options, game.OptionCount)
	assert.NotEmpty(t, problem.ID)

	w, env = call(t, a, http.MethodPost, "/api/game/submit", player.Token, gin.H{
		"problemId":     problem.ID,
		"userAnswer":    []int{problem.Target - 1, 1},
		"correctAnswer": problem.Target,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Correct bool   `json:"correct"`
		Message string `json:"message"`
		User    struct {
			XP       int     `json:"xp"`
			Accuracy float64 `json:"accuracy"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Correct)
	assert.Equal(t, "Correct! Keep up the good work!", result.Message)
	assert.Equal(t, 10, result.User.XP)
	assert.Equal(t, 1.0, result.User.Accuracy)

	w, env = call(t, a, http.MethodGet, "/api/user/"+player.User.ID+"/progress", player.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var progress struct {
		XP    int `json:"xp"`
		Level int `json:"level"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, 10, progress.XP)
}

func TestRouter_SubmitUnknownUser(t *testing.T) {
	a := newTestApp(t)
	player := signup(t, a, "Ada", "ada@example.com", "student")

	w, _ := call(t, a, http.MethodPost, "/api/game/submit", player.Token, gin.H{
		"userAnswer":    []int{1, 2},
		"correctAnswer": 3,
		"userId":        "ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ProgressPermissions(t *testing.T) {
	a := newTestApp(t)
	ada := signup(t, a, "Ada", "ada@example.com", "student")
	bob := signup(t, a, "Bob", "bob@example.com", "student")
	tess := signup(t, a, "Tess", "tess@example.com", "teacher")

	w, _ := call(t, a, http.MethodGet, "/api/user/"+ada.User.ID+"/progress", bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = call(t, a, http.MethodGet, "/api/user/"+ada.User.ID+"/progress", tess.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, a, http.MethodGet, "/api/user/missing/progress", tess.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_TeacherRoutes(t *testing.T) {
	a := newTestApp(t)
	ada := signup(t, a, "Ada", "ada@example.com", "student")
	tess := signup(t, a, "Tess", "tess@example.com", "teacher")

	w, _ := call(t, a, http.MethodGet, "/api/teacher/students", ada.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := call(t, a, http.MethodGet, "/api/teacher/students", tess.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var students []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &students))
	assert.Len(t, students, 1)

	w, _ = call(t, a, http.MethodGet, "/api/teacher/students/export", tess.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestRouter_AuthErrors(t *testing.T) {
	a := newTestApp(t)
	signup(t, a, "Ada", "ada@example.com", "student")

	w, _ := call(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = call(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := call(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var acc account
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.NotEmpty(t, acc.Token)
}

func TestRouter_HealthAndConfig(t *testing.T) {
	a := newTestApp(t)

	w, _ := call(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	player := signup(t, a, "Ada", "ada@example.com", "student")
	w, env := call(t, a, http.MethodGet, "/api/game/config", player.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg struct {
		Name  string `json:"name"`
		Range []int  `json:"target_number_range"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, "Basic Addition", cfg.Name)
	assert.Equal(t, []int{1, 10}, cfg.Range)
}

func TestApp_ApplyConfig(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < 3; i++ {
		w, _ := call(t, a, http.MethodGet, "/api/health", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	reloaded := *a.Config
	reloaded.RateLimit = config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 60}
	a.notifyConfig(&reloaded)

	w, _ := call(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = call(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
