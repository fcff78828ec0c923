package timeline

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/organization"
	"statuspage/internals/modules/service"
	"statuspage/pkg/apperror"
	"statuspage/pkg/status"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

type mockOrgs struct{ mock.Mock }

func (m *mockOrgs) Resolve(ctx context.Context, identifier string) (organization.Organization, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(organization.Organization), args.Error(1)
}

type mockServices struct{ mock.Mock }

func (m *mockServices) List(ctx context.Context, orgID uuid.UUID) ([]service.Service, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]service.Service), args.Error(1)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) InWindow(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]incident.Incident, error) {
	args := m.Called(ctx, orgID, start, end)
	return args.Get(0).([]incident.Incident), args.Error(1)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetOrgJSON(_ context.Context, _ uuid.UUID, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

type fixture struct {
	svc      *Service
	orgs     *mockOrgs
	services *mockServices
	repo     *mockRepo
	org      organization.Organization
}

func newService(t *testing.T, cache Cache) fixture {
	t.Helper()
	logger := zerolog.Nop()
	f := fixture{
		orgs:     &mockOrgs{},
		services: &mockServices{},
		repo:     &mockRepo{},
		org:      organization.Organization{ID: uuid.New(), Name: "Acme"},
	}
	f.svc = NewService(f.orgs, f.services, f.repo, cache, Options{DefaultDays: 30, MaxDays: 365, CacheTTL: time.Minute}, &logger)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func ptr(t time.Time) *time.Time { return &t }

func TestBuild_RejectsDaysOutOfRange(t *testing.T) {
	f := newService(t, nil)

	for _, days := range []int{0, -3, 366} {
		_, err := f.svc.Build(context.Background(), "Acme", days)
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.InvalidInput), "days=%d", days)
	}
	f.orgs.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestBuild_UnknownOrganization(t *testing.T) {
	f := newService(t, nil)
	f.orgs.On("Resolve", mock.Anything, "nope").
		Return(organization.Organization{}, apperror.Newf(apperror.NotFound, "test", "organization not found"))

	_, err := f.svc.Build(context.Background(), "nope", 30)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestBuild_ProjectsIncidentsPerService(t *testing.T) {
	f := newService(t, nil)
	api := service.Service{ID: uuid.New(), OrganizationID: f.org.ID, Name: "API", Status: status.PartialOutage}
	web := service.Service{ID: uuid.New(), OrganizationID: f.org.ID, Name: "Web", Status: status.Operational}

	start := fixedNow.AddDate(0, 0, -30)
	resolved := incident.Incident{
		ID: uuid.New(), ServiceID: api.ID, Title: "db failover",
		Impact: status.ImpactCritical, Status: status.Resolved,
		CreatedAt: start.Add(72 * time.Hour), ResolvedAt: ptr(start.Add(75 * time.Hour)),
	}
	ongoing := incident.Incident{
		ID: uuid.New(), ServiceID: api.ID, Title: "slow responses",
		Impact: status.ImpactHigh, Status: status.Investigating,
		CreatedAt: fixedNow.Add(-90 * time.Minute),
	}
	broken := incident.Incident{
		ID: uuid.New(), ServiceID: web.ID, Title: "clock skew",
		Impact: status.ImpactLow, Status: status.Resolved,
		CreatedAt: start.Add(10 * time.Hour), ResolvedAt: ptr(start.Add(9 * time.Hour)),
	}

	f.orgs.On("Resolve", mock.Anything, "Acme").Return(f.org, nil)
	f.services.On("List", mock.Anything, f.org.ID).Return([]service.Service{api, web}, nil)
	f.repo.On("InWindow", mock.Anything, f.org.ID, start, fixedNow).
		Return([]incident.Incident{resolved, ongoing, broken}, nil)

	tl, err := f.svc.Build(context.Background(), "Acme", 30)
	require.NoError(t, err)

	assert.Equal(t, "Acme", tl.Organization.Name)
	assert.Equal(t, 30, tl.Period.Days)
	assert.Equal(t, start, tl.Period.StartDate)
	require.Len(t, tl.Services, 2)

	apiRow := tl.Services[0]
	assert.Equal(t, "API", apiRow.Service.Name)
	assert.Equal(t, status.PartialOutage, apiRow.Service.CurrentStatus)
	require.Len(t, apiRow.Incidents, 2)
	assert.Equal(t, 2, apiRow.IncidentCount)

	first := apiRow.Incidents[0]
	assert.Equal(t, 10.0, first.Layout.LeftPercent)
	assert.Equal(t, 0.5, first.Layout.WidthPercent)
	assert.Equal(t, 3.0, first.DurationHours)
	assert.Equal(t, "3.0h", first.DurationLabel)
	assert.False(t, first.IsOngoing)
	assert.Equal(t, status.ImpactCritical.Color(), first.Color)

	second := apiRow.Incidents[1]
	assert.True(t, second.IsOngoing)
	assert.Equal(t, fixedNow, second.EndTime)
	assert.Equal(t, 1.5, second.DurationHours)

	// Invalid intervals are dropped entirely.
	assert.Empty(t, tl.Services[1].Incidents)
	assert.Equal(t, 0, tl.Services[1].IncidentCount)

	assert.Equal(t, Summary{
		TotalIncidents:         2,
		CriticalIncidents:      1,
		HighIncidents:          1,
		OngoingIncidents:       1,
		AverageResolutionHours: 3,
	}, tl.Summary)

	assert.Equal(t, "Critical", tl.ImpactLegend["critical"].Label)
	assert.Contains(t, tl.ImpactLegend, "unknown")
	assert.Equal(t, fixedNow, tl.GeneratedAt)
}

func TestBuild_EmptyOrganization(t *testing.T) {
	f := newService(t, nil)
	f.orgs.On("Resolve", mock.Anything, "Acme").Return(f.org, nil)
	f.services.On("List", mock.Anything, f.org.ID).Return([]service.Service{}, nil)
	f.repo.On("InWindow", mock.Anything, f.org.ID, mock.Anything, mock.Anything).Return([]incident.Incident{}, nil)

	tl, err := f.svc.Build(context.Background(), "Acme", 7)
	require.NoError(t, err)
	assert.Empty(t, tl.Services)
	assert.Zero(t, tl.Summary.AverageResolutionHours)
}

func TestBuild_ServedFromCache(t *testing.T) {
	f := newService(t, &memCache{data: map[string][]byte{}})
	f.orgs.On("Resolve", mock.Anything, "Acme").Return(f.org, nil)
	f.services.On("List", mock.Anything, f.org.ID).Return([]service.Service{}, nil).Once()
	f.repo.On("InWindow", mock.Anything, f.org.ID, mock.Anything, mock.Anything).Return([]incident.Incident{}, nil).Once()

	first, err := f.svc.Build(context.Background(), "Acme", 30)
	require.NoError(t, err)
	second, err := f.svc.Build(context.Background(), "Acme", 30)
	require.NoError(t, err)

	assert.Equal(t, first.Organization, second.Organization)
	f.services.AssertNumberOfCalls(t, "List", 1)
	f.repo.AssertNumberOfCalls(t, "InWindow", 1)
}
