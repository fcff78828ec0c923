package timeline

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/service"
	"statuspage/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_TimelineDefaultsDays(t *testing.T) {
	f := newService(t, nil)
	f.orgs.On("Resolve", mock.Anything, f.org.ID.String()).Return(f.org, nil)
	f.services.On("List", mock.Anything, f.org.ID).Return([]service.Service{}, nil)
	f.repo.On("InWindow", mock.Anything, f.org.ID, mock.Anything, mock.Anything).Return([]incident.Incident{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/"+f.org.ID.String()+"/incidents/timeline", nil)
	Routes(NewHandler(f.svc)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body utils.SuccessResponse[Timeline]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 30, body.Data.Period.Days)
	assert.Equal(t, f.org.ID, body.Data.Organization.ID)
}

func TestHandler_TimelineBadDays(t *testing.T) {
	for _, q := range []string{"abc", "0", "400"} {
		f := newService(t, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/Acme/incidents/timeline?days="+q, nil)
		Routes(NewHandler(f.svc)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", q)
	}
}
