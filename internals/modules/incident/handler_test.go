package incident

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	middle "statuspage/internals/middleware"
	"statuspage/internals/modules/service"
	"statuspage/internals/security"
	"statuspage/pkg/status"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func routerAs(h *Handler, user *middle.AuthenticatedUser) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middle.WithUser(req.Context(), user)))
		})
	})
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.With(middle.AllowEditors).Post("/", h.Create)
	r.With(middle.AllowEditors).Patch("/{incidentID}/status", h.UpdateStatus)
	r.With(middle.AllowAdmin).Delete("/{incidentID}", h.Delete)
	return r
}

func member(role security.Role) *middle.AuthenticatedUser {
	return &middle.AuthenticatedUser{UserID: uuid.New(), OrgID: uuid.New(), Role: role}
}

func TestHandler_ListFilters(t *testing.T) {
	s, repo, _, _ := newService(t)
	h := NewHandler(s, validator.New())
	viewer := member(security.RoleViewer)
	svcID := uuid.New()

	repo.On("List", mock.Anything, ListFilter{OrganizationID: viewer.OrgID, ServiceID: &svcID, ActiveOnly: true}).
		Return([]Incident{openIncident(viewer.OrgID)}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?active_only=true&service_id="+svcID.String(), nil)
	routerAs(h, viewer).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body utils.SuccessResponse[[]IncidentResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, status.Investigating, body.Data[0].Status)
}

func TestHandler_ListRejectsBadServiceID(t *testing.T) {
	s, repo, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	routerAs(h, member(security.RoleViewer)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?service_id=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_CreateAsEditor(t *testing.T) {
	s, repo, svcs, _ := newService(t)
	h := NewHandler(s, validator.New())
	editor := member(security.RoleEditor)
	inc := openIncident(editor.OrgID)

	svcs.On("Get", mock.Anything, inc.ServiceID, editor.OrgID).Return(service.Service{ID: inc.ServiceID}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c CreateIncidentCmd) bool {
		return c.Impact == status.ImpactCritical && c.OrganizationID == editor.OrgID
	})).Return(inc, nil)
	svcs.On("RefreshStatus", mock.Anything, inc.ServiceID, editor.OrgID).Return(service.Service{}, true, nil)

	body := `{"service_id":"` + inc.ServiceID.String() + `","title":"DB down","impact":"critical"}`
	rec := httptest.NewRecorder()
	routerAs(h, editor).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_CreateForbiddenForViewer(t *testing.T) {
	s, _, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	body := `{"service_id":"` + uuid.NewString() + `","title":"x"}`
	routerAs(h, member(security.RoleViewer)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_UpdateStatusValidates(t *testing.T) {
	s, repo, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"paused"}`))
	routerAs(h, member(security.RoleAdmin)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_DeleteRequiresAdmin(t *testing.T) {
	s, _, _, _ := newService(t)
	h := NewHandler(s, validator.New())

	rec := httptest.NewRecorder()
	routerAs(h, member(security.RoleEditor)).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Stats(t *testing.T) {
	s, repo, _, _ := newService(t)
	h := NewHandler(s, validator.New())
	viewer := member(security.RoleViewer)

	repo.On("Stats", mock.Anything, viewer.OrgID).Return(Stats{Total: 4, Active: 1, Resolved: 3, CriticalActive: 1}, nil)

	rec := httptest.NewRecorder()
	routerAs(h, viewer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body utils.SuccessResponse[map[string]int64]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]int64{"total_incidents": 4, "active_incidents": 1, "resolved_incidents": 3, "critical_active": 1}, body.Data)
}
