package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"newsdigest/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_CreatesUserAndSession(t *testing.T) {
	env := newTestEnv()

	w := doRequest(env.router(), "POST", "/api/register", gin.H{"username": "bob", "password": "secret"}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	var res AuthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "bob", res.User.Username)
	assert.NotEqual(t, "", res.Token)
	assert.Equal(t, res.User.ID, env.sessions.tokens[res.Token])

	cookies := w.Result().Cookies()
	assert.Equal(t, 1, len(cookies))
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, res.Token, cookies[0].Value)

	stored := env.users.users[res.User.ID]
	assert.Equal(t, nil, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv()

	w := doRequest(env.router(), "POST", "/api/register", gin.H{"username": "alice", "password": "secret"}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv()

	w := doRequest(env.router(), "POST", "/api/register", gin.H{"username": "  "}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	env.users.users[1].PasswordHash = string(hash)

	tests := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{"valid", "alice", "pw", http.StatusOK},
		{"wrong password", "alice", "nope", http.StatusUnauthorized},
		{"unknown user", "carol", "pw", http.StatusUnauthorized},
		{"missing password", "alice", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router(), "POST", "/api/login", gin.H{"username": tt.username, "password": tt.password}, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	env := newTestEnv()
	token := env.login(1)

	w := doRequest(env.router(), "POST", "/api/logout", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)
	_, ok := env.sessions.tokens[token]
	assert.Equal(t, false, ok)
}

func TestGetUser_Unauthenticated(t *testing.T) {
	env := newTestEnv()

	w := doRequest(env.router(), "GET", "/api/user", nil, "unknown-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUser_ReportsKeyPresence(t *testing.T) {
	env := newTestEnv()
	env.users.users[1].AIAPIKey = "ai"
	token := env.login(1)

	w := doRequest(env.router(), "GET", "/api/user", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)
	var res UserResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, false, res.HasNewsAPIKey)
	assert.Equal(t, true, res.HasAIAPIKey)
}

func TestGetUser_CookieSession(t *testing.T) {
	env := newTestEnv()
	token := env.login(1)

	req := httptestRequest("GET", "/api/user")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := serve(env.router(), req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUser_PartialKeys(t *testing.T) {
	env := newTestEnv()
	env.users.users[1].NewsAPIKey = "old-news"
	env.users.users[1].AIAPIKey = "old-ai"
	token := env.login(1)

	w := doRequest(env.router(), "PATCH", "/api/user", gin.H{"aiApiKey": ""}, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.User{
		ID:         1,
		Username:   "alice",
		NewsAPIKey: "old-news",
		CreatedAt:  env.users.users[1].CreatedAt,
	}, *env.users.users[1])
}
