package team

import (
	"context"
	"testing"
	"time"

	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]user.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockRepo) GetInOrg(ctx context.Context, id, orgID uuid.UUID) (user.User, error) {
	args := m.Called(ctx, id, orgID)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepo) UpdateAccess(ctx context.Context, c AccessChange) (user.User, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepo) UpdateRole(ctx context.Context, id, orgID uuid.UUID, role security.Role) (user.User, error) {
	args := m.Called(ctx, id, orgID, role)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepo) Organization(ctx context.Context, id uuid.UUID) (OrganizationInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(OrganizationInfo), args.Error(1)
}

var teamNow = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

func newService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	log := zerolog.Nop()
	repo := &mockRepo{}
	s := NewService(repo, &log)
	s.now = func() time.Time { return teamNow }
	return s, repo
}

func member(orgID uuid.UUID, st security.AccountStatus, role security.Role) user.User {
	return user.User{ID: uuid.New(), OrganizationID: orgID, Email: "m@acme.io", Status: st, Role: role}
}

func TestService_MembersCounts(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	orgID := uuid.New()

	repo.On("ListByOrg", ctx, orgID).Return([]user.User{
		member(orgID, security.StatusPending, security.RoleViewer),
		member(orgID, security.StatusPending, security.RoleViewer),
		member(orgID, security.StatusApproved, security.RoleAdmin),
		member(orgID, security.StatusRejected, security.RoleViewer),
	}, nil)

	sum, err := s.Members(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Pending)
	assert.Equal(t, 1, sum.Approved)
	assert.Equal(t, 1, sum.Rejected)
}

func TestService_DecideApprove(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	m := member(actor.OrgID, security.StatusPending, security.RoleViewer)

	repo.On("GetInOrg", ctx, m.ID, actor.OrgID).Return(m, nil)
	repo.On("UpdateAccess", ctx, AccessChange{
		UserID:         m.ID,
		OrganizationID: actor.OrgID,
		Status:         security.StatusApproved,
		Role:           security.RoleEditor,
		ApprovedBy:     actor.UserID,
		ApprovedAt:     teamNow,
	}).Return(m, nil)

	_, err := s.Decide(ctx, actor, m.ID, ActionApprove, security.RoleEditor)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_DecideRejectKeepsRole(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	m := member(actor.OrgID, security.StatusPending, security.RoleViewer)

	repo.On("GetInOrg", ctx, m.ID, actor.OrgID).Return(m, nil)
	repo.On("UpdateAccess", ctx, mock.MatchedBy(func(c AccessChange) bool {
		return c.Status == security.StatusRejected && c.Role == security.RoleViewer
	})).Return(m, nil)

	_, err := s.Decide(ctx, actor, m.ID, ActionReject, "")
	require.NoError(t, err)
}

func TestService_DecideOnlyPending(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	m := member(actor.OrgID, security.StatusApproved, security.RoleViewer)

	repo.On("GetInOrg", ctx, m.ID, actor.OrgID).Return(m, nil)

	_, err := s.Decide(ctx, actor, m.ID, ActionApprove, security.RoleViewer)
	assert.True(t, apperror.IsKind(err, apperror.Conflict))
	repo.AssertNotCalled(t, "UpdateAccess", mock.Anything, mock.Anything)
}

func TestService_CrossOrgTargetIsNotFound(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	other := uuid.New()

	repo.On("GetInOrg", ctx, other, actor.OrgID).
		Return(user.User{}, apperror.Newf(apperror.NotFound, "repo.team.get_in_org", "resource not found"))

	_, err := s.Revoke(ctx, actor, other)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestService_CannotActOnSelf(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}

	_, err := s.Revoke(ctx, actor, actor.UserID)
	assert.True(t, apperror.IsKind(err, apperror.InvalidInput))

	_, err = s.UpdateRole(ctx, actor, actor.UserID, security.RoleViewer)
	assert.True(t, apperror.IsKind(err, apperror.InvalidInput))

	repo.AssertNotCalled(t, "GetInOrg", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateRoleRequiresApproved(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	pending := member(actor.OrgID, security.StatusPending, security.RoleViewer)
	approved := member(actor.OrgID, security.StatusApproved, security.RoleViewer)

	repo.On("GetInOrg", ctx, pending.ID, actor.OrgID).Return(pending, nil)
	_, err := s.UpdateRole(ctx, actor, pending.ID, security.RoleEditor)
	assert.True(t, apperror.IsKind(err, apperror.Conflict))

	repo.On("GetInOrg", ctx, approved.ID, actor.OrgID).Return(approved, nil)
	repo.On("UpdateRole", ctx, approved.ID, actor.OrgID, security.RoleEditor).Return(approved, nil)
	_, err = s.UpdateRole(ctx, actor, approved.ID, security.RoleEditor)
	require.NoError(t, err)
}

func TestService_Restore(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()
	actor := Actor{UserID: uuid.New(), OrgID: uuid.New()}
	rejected := member(actor.OrgID, security.StatusRejected, security.RoleEditor)
	approved := member(actor.OrgID, security.StatusApproved, security.RoleEditor)

	repo.On("GetInOrg", ctx, approved.ID, actor.OrgID).Return(approved, nil)
	_, err := s.Restore(ctx, actor, approved.ID, security.RoleViewer)
	assert.True(t, apperror.IsKind(err, apperror.Conflict))

	repo.On("GetInOrg", ctx, rejected.ID, actor.OrgID).Return(rejected, nil)
	repo.On("UpdateAccess", ctx, mock.MatchedBy(func(c AccessChange) bool {
		return c.Status == security.StatusApproved && c.Role == security.RoleViewer && c.ApprovedBy == actor.UserID
	})).Return(rejected, nil)
	_, err = s.Restore(ctx, actor, rejected.ID, "")
	require.NoError(t, err)
}
