package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	middle "statuspage/internals/middleware"
	"statuspage/internals/security"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.LogIn)
	r.Post("/token", h.Token)
	r.Get("/me", h.Me)
	return r
}

func TestHandler_RegisterValidation(t *testing.T) {
	s, repo, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	body := `{"first_name":"Ada","last_name":"L","email":"not-an-email","password":"longenough","organization_id":"` + uuid.NewString() + `"}`
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "OrganizationExists", mock.Anything, mock.Anything)
}

func TestHandler_TokenFormLogin(t *testing.T) {
	s, repo, _ := newService(t)
	h := NewHandler(s, validator.New())
	u := storedUser(t, "correct horse", security.StatusApproved)
	repo.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	form := url.Values{"username": {u.Email}, "password": {"correct horse"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body utils.SuccessResponse[TokenResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.Data.TokenType)
	assert.Equal(t, "signed-token", body.Data.AccessToken)
}

func TestHandler_TokenMissingFields(t *testing.T) {
	s, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("username=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LoginPendingIsForbidden(t *testing.T) {
	s, repo, _ := newService(t)
	h := NewHandler(s, validator.New())
	u := storedUser(t, "correct horse", security.StatusPending)
	repo.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	rec := httptest.NewRecorder()
	body := `{"email":"` + u.Email + `","password":"correct horse"}`
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_MeWithoutUser(t *testing.T) {
	s, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Me(t *testing.T) {
	s, repo, _ := newService(t)
	h := NewHandler(s, validator.New())
	u := storedUser(t, "pw-pw-pw-pw", security.StatusApproved)
	repo.On("GetByID", mock.Anything, u.ID).Return(u, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(middle.WithUser(req.Context(), &middle.AuthenticatedUser{UserID: u.ID, OrgID: u.OrganizationID}))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body utils.SuccessResponse[ProfileResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, u.Email, body.Data.Email)
	assert.Equal(t, security.RoleEditor, body.Data.Role)
}
