package organization

import (
	"context"
	"testing"

	"statuspage/pkg/apperror"
	"statuspage/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Organization), args.Error(1)
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (Organization, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(Organization), args.Error(1)
}

func (m *mockRepo) ListPublic(ctx context.Context) ([]Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Organization), args.Error(1)
}

func (m *mockRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) GetSettings(ctx context.Context, orgID uuid.UUID) (Settings, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(Settings), args.Error(1)
}

func (m *mockRepo) GetSettingsByHost(ctx context.Context, host string) (Settings, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(Settings), args.Error(1)
}

func (m *mockRepo) CreateSettings(ctx context.Context, s Settings) (Settings, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(Settings), args.Error(1)
}

func (m *mockRepo) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(Settings), args.Error(1)
}

func (m *mockRepo) Register(ctx context.Context, in NewOrganization) (Registration, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Registration), args.Error(1)
}

type recordingEmitter struct{ types []string }

func (e *recordingEmitter) Emit(eventType string, _ uuid.UUID, _ any) {
	e.types = append(e.types, eventType)
}

func notFound(op string) error {
	return apperror.Newf(apperror.NotFound, op, "resource not found")
}

func newService(t *testing.T) (*Service, *mockRepo, *recordingEmitter) {
	t.Helper()
	plans, err := LoadCatalogue(nil)
	require.NoError(t, err)
	log := zerolog.Nop()
	repo, em := &mockRepo{}, &recordingEmitter{}
	return NewService(repo, plans, em, &log), repo, em
}

func registerCmd(code string) RegisterCmd {
	return RegisterCmd{
		Name:             " Acme Cloud ",
		SubscriptionCode: code,
		AdminFirstName:   "Ada",
		AdminLastName:    "Lovelace",
		AdminEmail:       "Ada@Acme.io",
		AdminPassword:    "correct horse battery",
	}
}

func TestService_ValidateSubscription(t *testing.T) {
	s, _, _ := newService(t)

	ok := s.ValidateSubscription("ENTERPRISE2024")
	assert.True(t, ok.Valid)
	assert.Equal(t, "Enterprise Plan", ok.PlanName)
	assert.Contains(t, ok.Features, "API access")

	bad := s.ValidateSubscription("FREE")
	assert.False(t, bad.Valid)
	assert.Equal(t, "Invalid subscription code", bad.Message)
}

func TestService_RegisterTrialPlan(t *testing.T) {
	s, repo, em := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("GetByName", ctx, "Acme Cloud").Return(Organization{}, notFound("repo.organization.get_by_name"))
	repo.On("EmailTaken", ctx, "ada@acme.io").Return(false, nil)
	repo.On("Register", ctx, mock.MatchedBy(func(in NewOrganization) bool {
		return in.Status == StatusTrial &&
			in.PlanName == "Trial Plan" &&
			in.Admin.Email == "ada@acme.io" &&
			in.Admin.PasswordHash != "" &&
			in.Admin.PasswordHash != "correct horse battery"
	})).Return(Registration{Organization: Organization{ID: orgID, Status: StatusTrial}, Subdomain: "acme-cloud"}, nil)

	reg, err := s.Register(ctx, registerCmd("TRIAL2024"))
	require.NoError(t, err)
	assert.Equal(t, orgID, reg.Organization.ID)
	assert.Equal(t, "TRIAL2024", reg.Plan.Code)
	assert.Equal(t, []string{rabbitmq.OrganizationCreated}, em.types)
	repo.AssertExpectations(t)
}

func TestService_RegisterRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		s, repo, _ := newService(t)
		_, err := s.Register(ctx, registerCmd("NOPE"))
		assert.True(t, apperror.IsKind(err, apperror.InvalidInput))
		repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("name taken", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("GetByName", ctx, "Acme Cloud").Return(Organization{ID: uuid.New()}, nil)

		_, err := s.Register(ctx, registerCmd("STARTUP2024"))
		assert.True(t, apperror.IsKind(err, apperror.AlreadyExists))
	})

	t.Run("email taken", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("GetByName", ctx, "Acme Cloud").Return(Organization{}, notFound("x"))
		repo.On("EmailTaken", ctx, "ada@acme.io").Return(true, nil)

		_, err := s.Register(ctx, registerCmd("STARTUP2024"))
		assert.True(t, apperror.IsKind(err, apperror.AlreadyExists))
		repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestService_CreateSettingsOnce(t *testing.T) {
	s, repo, em := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("GetSettings", ctx, orgID).Return(DefaultSettings(orgID), nil)

	_, err := s.CreateSettings(ctx, orgID, SettingsPatch{})
	assert.True(t, apperror.IsKind(err, apperror.AlreadyExists))
	assert.Empty(t, em.types)
}

func TestService_CreateSettingsAppliesDefaults(t *testing.T) {
	s, repo, em := newService(t)
	ctx := context.Background()
	orgID := uuid.New()
	title := "Acme Status"

	repo.On("GetSettings", ctx, orgID).Return(Settings{}, notFound("repo.organization.get_settings"))
	repo.On("CreateSettings", ctx, mock.MatchedBy(func(st Settings) bool {
		return st.PageTitle == title && st.PrimaryColor == "#3b82f6" && st.ShowIncidentHistory
	})).Return(Settings{OrganizationID: orgID, PageTitle: title}, nil)

	got, err := s.CreateSettings(ctx, orgID, SettingsPatch{PageTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.PageTitle)
	assert.Equal(t, []string{rabbitmq.SettingsUpdated}, em.types)
}

func TestService_UpdateSettingsMergesPatch(t *testing.T) {
	s, repo, em := newService(t)
	ctx := context.Background()
	orgID := uuid.New()
	current := DefaultSettings(orgID)
	current.PageTitle = "Old"
	on := true

	repo.On("GetSettings", ctx, orgID).Return(current, nil)
	repo.On("UpdateSettings", ctx, mock.MatchedBy(func(st Settings) bool {
		return st.PageTitle == "Old" && st.MaintenanceMode
	})).Return(current, nil)

	_, err := s.UpdateSettings(ctx, orgID, SettingsPatch{MaintenanceMode: &on})
	require.NoError(t, err)
	assert.Equal(t, []string{rabbitmq.SettingsUpdated}, em.types)
}
