package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

type fakeUsers struct {
	byID map[int64]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

type memoryBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Time
}

func (m *memoryBlacklist) Add(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jtis[jti] = until
	return nil
}

func (m *memoryBlacklist) Contains(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jtis[jti]
	return ok, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func setupRouter(t *testing.T) (*gin.Engine, *JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hashed, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	users := &fakeUsers{byID: map[int64]*models.User{
		1: {ID: 1, Username: "sara", Password: hashed, IsActive: true},
		2: {ID: 2, Username: "disabled", Password: hashed, IsActive: false},
	}}
	jwtService := NewJWTService("test-secret", time.Hour, 24*time.Hour)
	h := NewHandler(users, jwtService, &memoryBlacklist{jtis: map[string]time.Time{}}, zap.NewNop())

	r := gin.New()
	r.POST("/token/", h.Obtain)
	r.POST("/token/refresh/", h.Refresh)
	r.POST("/token/blacklist/", h.Blacklist)
	return r, jwtService
}

func postJSON(r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestObtainRefreshBlacklist(t *testing.T) {
	r, jwtService := setupRouter(t)

	w := postJSON(r, "/token/", ObtainRequest{Username: "sara", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var pair TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	claims, err := jwtService.Validate(pair.Access, TokenAccess)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)

	w = postJSON(r, "/token/refresh/", RefreshRequest{Refresh: pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// An access token cannot be used as a refresh token.
	w = postJSON(r, "/token/refresh/", RefreshRequest{Refresh: pair.Access})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/token/blacklist/", RefreshRequest{Refresh: pair.Refresh})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = postJSON(r, "/token/refresh/", RefreshRequest{Refresh: pair.Refresh})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestObtainRejectsBadCredentials(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name string
		req  ObtainRequest
	}{
		{"wrong password", ObtainRequest{Username: "sara", Password: "nope"}},
		{"unknown user", ObtainRequest{Username: "ghost", Password: "correct-horse"}},
		{"inactive user", ObtainRequest{Username: "disabled", Password: "correct-horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/token/", tt.req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	w := postJSON(r, "/token/", map[string]string{"username": "sara"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("other-secret", time.Hour, time.Hour)
	pair, err := issuer.IssuePair(7)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour, time.Hour).Validate(pair.Access, TokenAccess)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate(pair.Refresh, TokenAccess)
	require.ErrorIs(t, err, ErrWrongType)
}

func TestValidateRejectsExpired(t *testing.T) {
	s := NewJWTService("test-secret", -time.Minute, time.Hour)
	token, err := s.IssueAccess(3)
	require.NoError(t, err)
	_, err = s.Validate(token, TokenAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}
