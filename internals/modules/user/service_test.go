package user

import (
	"context"
	"testing"
	"time"

	"statuspage/internals/security"
	"statuspage/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, cmd CreateUserCmd) (User, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockRepo) OrganizationExists(ctx context.Context, orgID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID)
	return args.Bool(0), args.Error(1)
}

type stubTokens struct{ claims security.RequestClaims }

func (s *stubTokens) GenerateAccessToken(p security.RequestClaims) (string, error) {
	s.claims = p
	return "signed-token", nil
}

func (s *stubTokens) TTL() time.Duration { return 30 * time.Minute }

var notFound = apperror.Newf(apperror.NotFound, "repo.user.get_by_email", "resource not found")

func newService(t *testing.T) (*Service, *mockRepo, *stubTokens) {
	t.Helper()
	log := zerolog.Nop()
	repo, tokens := &mockRepo{}, &stubTokens{}
	return NewService(repo, tokens, &log), repo, tokens
}

func storedUser(t *testing.T, password string, st security.AccountStatus) User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return User{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		PasswordHash:   hash,
		OrganizationID: uuid.New(),
		Role:           security.RoleEditor,
		Status:         st,
	}
}

func TestService_RegisterCreatesPendingViewer(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("OrganizationExists", ctx, orgID).Return(true, nil)
	repo.On("GetByEmail", ctx, "ada@example.com").Return(User{}, notFound)
	repo.On("Create", ctx, mock.MatchedBy(func(c CreateUserCmd) bool {
		return c.Role == security.RoleViewer &&
			c.Status == security.StatusPending &&
			c.Email == "ada@example.com" &&
			c.PasswordHash != "hunter2hunter2"
	})).Return(User{ID: uuid.New(), Status: security.StatusPending}, nil)

	u, err := s.Register(ctx, RegisterCmd{Email: " Ada@Example.com", Password: "hunter2hunter2", OrganizationID: orgID})
	require.NoError(t, err)
	assert.Equal(t, security.StatusPending, u.Status)
	repo.AssertExpectations(t)
}

func TestService_RegisterUnknownOrganization(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("OrganizationExists", ctx, orgID).Return(false, nil)

	_, err := s.Register(ctx, RegisterCmd{Email: "a@b.co", Password: "longenough", OrganizationID: orgID})
	assert.True(t, apperror.IsKind(err, apperror.InvalidInput))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("OrganizationExists", ctx, orgID).Return(true, nil)
	repo.On("GetByEmail", ctx, "a@b.co").Return(User{ID: uuid.New()}, nil)

	_, err := s.Register(ctx, RegisterCmd{Email: "a@b.co", Password: "longenough", OrganizationID: orgID})
	assert.True(t, apperror.IsKind(err, apperror.AlreadyExists))
}

func TestService_LogIn(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		status   security.AccountStatus
		password string
		wantKind apperror.Kind
		wantMsg  string
	}{
		{name: "approved", status: security.StatusApproved, password: "correct horse"},
		{name: "wrong password", status: security.StatusApproved, password: "nope", wantKind: apperror.Unauthorised},
		{name: "pending", status: security.StatusPending, password: "correct horse", wantKind: apperror.Forbidden, wantMsg: "account pending admin approval"},
		{name: "rejected", status: security.StatusRejected, password: "correct horse", wantKind: apperror.Forbidden, wantMsg: "access revoked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, tokens := newService(t)
			u := storedUser(t, "correct horse", tt.status)
			repo.On("GetByEmail", ctx, u.Email).Return(u, nil)

			tok, err := s.LogIn(ctx, LogInCmd{Email: u.Email, Password: tt.password})
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, tt.wantKind))
				if tt.wantMsg != "" {
					var appErr *apperror.Error
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tt.wantMsg, appErr.Message)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", tok.AccessToken)
			assert.Equal(t, "bearer", tok.TokenType)
			assert.Equal(t, int64(1800), tok.ExpiresIn)
			assert.Equal(t, u.ID.String(), tokens.claims.UserID)
			assert.Equal(t, "editor", tokens.claims.Role)
		})
	}
}

func TestService_LogInUnknownEmail(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(User{}, notFound)

	_, err := s.LogIn(ctx, LogInCmd{Email: "ghost@example.com", Password: "x"})
	assert.True(t, apperror.IsKind(err, apperror.Unauthorised))
}
