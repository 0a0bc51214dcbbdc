package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/utils"
)

type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]*models.User
	protected map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]*models.User{}, protected: map[int64]bool{}}
}

func (f *fakeStore) List(context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.rows[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) conflict(u *models.User) error {
	for _, other := range f.rows {
		if other.ID == u.ID {
			continue
		}
		if other.Phone == u.Phone {
			return &database.ConflictError{Field: "phone"}
		}
		if other.Username == u.Username {
			return &database.ConflictError{Field: "username"}
		}
	}
	return nil
}

func (f *fakeStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(u); err != nil {
		return err
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeStore) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(u); err != nil {
		return err
	}
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return database.ErrNotFound
	}
	if f.protected[id] {
		return database.ErrProtected
	}
	delete(f.rows, id)
	return nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
	Field string          `json:"field"`
}

func setup(t *testing.T, caller *models.User) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newFakeStore()
	h := NewHandler(store, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.ContextUser, caller)
		}
		c.Next()
	})
	r.GET("/users/", h.List)
	r.POST("/users/", h.Create)
	r.GET("/users/me/", middleware.RequireAuth(), h.Me)
	r.GET("/users/:id/", h.Get)
	r.PATCH("/users/:id/", h.Patch)
	r.DELETE("/users/:id/", h.Delete)
	return r, store
}

func send(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateHashesPasswordAndHidesIt(t *testing.T) {
	r, store := setup(t, nil)

	w, env := send(r, http.MethodPost, "/users/", map[string]interface{}{
		"username": "sara", "password": "long-enough-pw", "phone": "09120000000", "organization": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotContains(t, string(env.Data), "password")

	var created Response
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Nil(t, created.Organization)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, stored.IsActive)
	require.True(t, utils.CheckPassword("long-enough-pw", stored.Password))
}

func TestCreateRequiresPassword(t *testing.T) {
	r, _ := setup(t, nil)
	w, _ := send(r, http.MethodPost, "/users/", map[string]string{"username": "sara", "phone": "0912"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicatePhone(t *testing.T) {
	r, _ := setup(t, nil)
	body := map[string]string{"username": "a", "password": "long-enough-pw", "phone": "0912"}
	w, _ := send(r, http.MethodPost, "/users/", body)
	require.Equal(t, http.StatusCreated, w.Code)

	body["username"] = "b"
	w, env := send(r, http.MethodPost, "/users/", body)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "phone", env.Field)
}

func TestPatchKeepsPassword(t *testing.T) {
	r, store := setup(t, nil)
	w, _ := send(r, http.MethodPost, "/users/", map[string]string{"username": "a", "password": "long-enough-pw", "phone": "0912"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = send(r, http.MethodPatch, "/users/1/", map[string]string{"first_name": "Ali"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Ali", u.FirstName)
	require.Equal(t, "0912", u.Phone)
	require.True(t, utils.CheckPassword("long-enough-pw", u.Password))
}

func TestDeleteProtected(t *testing.T) {
	r, store := setup(t, nil)
	w, _ := send(r, http.MethodPost, "/users/", map[string]string{"username": "a", "password": "long-enough-pw", "phone": "0912"})
	require.Equal(t, http.StatusCreated, w.Code)
	store.protected[1] = true

	w, env := send(r, http.MethodDelete, "/users/1/", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "protected_reference", env.Code)
	_, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
}

func TestMe(t *testing.T) {
	orgID := int64(4)
	r, _ := setup(t, &models.User{ID: 12, Username: "organizer", OrganizationID: &orgID})
	w, env := send(r, http.MethodGet, "/users/me/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me Response
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.Equal(t, int64(12), me.ID)
	require.Equal(t, int64(4), *me.Organization)

	anon, _ := setup(t, nil)
	w, _ = send(anon, http.MethodGet, "/users/me/", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlankRequiredFields(t *testing.T) {
	for field, msg := range map[string]string{
		"username": "username: this field may not be blank",
		"phone":    "phone: this field may not be blank",
	} {
		t.Run(field, func(t *testing.T) {
			r, store := setup(t, nil)
			body := map[string]string{"username": "a", "password": "long-enough-pw", "phone": "0912"}
			body[field] = "   "
			w, env := send(r, http.MethodPost, "/users/", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, msg, env.Error)
			require.Empty(t, store.rows)

			body[field] = "x"
			w, _ = send(r, http.MethodPost, "/users/", body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			w, env = send(r, http.MethodPatch, "/users/1/", map[string]string{field: " \t"})
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, msg, env.Error)
		})
	}
}
