package team

import (
	"context"
	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Repository interface {
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]user.User, error)
	GetInOrg(ctx context.Context, id, orgID uuid.UUID) (user.User, error)
	UpdateAccess(ctx context.Context, c AccessChange) (user.User, error)
	UpdateRole(ctx context.Context, id, orgID uuid.UUID, role security.Role) (user.User, error)
	Organization(ctx context.Context, id uuid.UUID) (OrganizationInfo, error)
}

// Actor is the admin performing a team operation.
type Actor struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
}

type Service struct {
	repo   Repository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Members(ctx context.Context, orgID uuid.UUID) (Summary, error) {
	members, err := s.repo.ListByOrg(ctx, orgID)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Total: len(members), Members: members}
	for _, m := range members {
		switch m.Status {
		case security.StatusPending:
			sum.Pending++
		case security.StatusApproved:
			sum.Approved++
		case security.StatusRejected:
			sum.Rejected++
		}
	}
	return sum, nil
}

// Decide approves or rejects a pending member.
func (s *Service) Decide(ctx context.Context, actor Actor, target uuid.UUID, action Action, role security.Role) (user.User, error) {
	const op string = "service.team.decide"

	m, err := s.target(ctx, op, actor, target)
	if err != nil {
		return user.User{}, err
	}
	if m.Status != security.StatusPending {
		return user.User{}, apperror.Newf(apperror.Conflict, op, "user is not in pending status")
	}

	change := s.change(actor, m)
	switch action {
	case ActionApprove:
		if role == "" {
			role = security.RoleViewer
		}
		if !role.Valid() {
			return user.User{}, apperror.Newf(apperror.InvalidInput, op, "invalid role %q", role)
		}
		change.Status, change.Role = security.StatusApproved, role
	case ActionReject:
		change.Status = security.StatusRejected
	default:
		return user.User{}, apperror.Newf(apperror.InvalidInput, op, "action must be approve or reject")
	}

	return s.apply(ctx, actor, change, string(action))
}

func (s *Service) UpdateRole(ctx context.Context, actor Actor, target uuid.UUID, role security.Role) (user.User, error) {
	const op string = "service.team.update_role"

	if !role.Valid() {
		return user.User{}, apperror.Newf(apperror.InvalidInput, op, "invalid role %q", role)
	}
	if target == actor.UserID {
		return user.User{}, apperror.Newf(apperror.InvalidInput, op, "you cannot change your own role")
	}

	m, err := s.target(ctx, op, actor, target)
	if err != nil {
		return user.User{}, err
	}
	if m.Status != security.StatusApproved {
		return user.User{}, apperror.Newf(apperror.Conflict, op, "user is not approved")
	}

	return s.repo.UpdateRole(ctx, target, actor.OrgID, role)
}

// Revoke moves any member other than the caller to rejected.
func (s *Service) Revoke(ctx context.Context, actor Actor, target uuid.UUID) (user.User, error) {
	const op string = "service.team.revoke"

	if target == actor.UserID {
		return user.User{}, apperror.Newf(apperror.InvalidInput, op, "you cannot revoke your own access")
	}

	m, err := s.target(ctx, op, actor, target)
	if err != nil {
		return user.User{}, err
	}

	change := s.change(actor, m)
	change.Status = security.StatusRejected
	return s.apply(ctx, actor, change, "revoke")
}

// Restore re-approves a pending or rejected member with the given role.
func (s *Service) Restore(ctx context.Context, actor Actor, target uuid.UUID, role security.Role) (user.User, error) {
	const op string = "service.team.restore"

	if role == "" {
		role = security.RoleViewer
	}
	if !role.Valid() {
		return user.User{}, apperror.Newf(apperror.InvalidInput, op, "invalid role %q", role)
	}

	m, err := s.target(ctx, op, actor, target)
	if err != nil {
		return user.User{}, err
	}
	if m.Status == security.StatusApproved {
		return user.User{}, apperror.Newf(apperror.Conflict, op, "user already has access")
	}

	change := s.change(actor, m)
	change.Status, change.Role = security.StatusApproved, role
	return s.apply(ctx, actor, change, "restore")
}

func (s *Service) Organization(ctx context.Context, id uuid.UUID) (OrganizationInfo, error) {
	return s.repo.Organization(ctx, id)
}

// target loads a member of the actor's organization; other organizations look like 404.
func (s *Service) target(ctx context.Context, op string, actor Actor, id uuid.UUID) (user.User, error) {
	m, err := s.repo.GetInOrg(ctx, id, actor.OrgID)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return user.User{}, apperror.Newf(apperror.NotFound, op, "user not found")
		}
		return user.User{}, err
	}
	return m, nil
}

func (s *Service) change(actor Actor, m user.User) AccessChange {
	return AccessChange{
		UserID:         m.ID,
		OrganizationID: actor.OrgID,
		Status:         m.Status,
		Role:           m.Role,
		ApprovedBy:     actor.UserID,
		ApprovedAt:     s.now().UTC(),
	}
}

func (s *Service) apply(ctx context.Context, actor Actor, c AccessChange, action string) (user.User, error) {
	u, err := s.repo.UpdateAccess(ctx, c)
	if err != nil {
		return user.User{}, err
	}

	s.logger.Info().
		Str("action", action).
		Str("actor_id", actor.UserID.String()).
		Str("user_id", u.ID.String()).
		Str("status", string(u.Status)).
		Str("role", string(u.Role)).
		Msg("team access changed")

	return u, nil
}
