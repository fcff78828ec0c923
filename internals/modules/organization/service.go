package organization

import (
	"context"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"statuspage/pkg/rabbitmq"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
	GetByName(ctx context.Context, name string) (Organization, error)
	ListPublic(ctx context.Context) ([]Organization, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	GetSettings(ctx context.Context, orgID uuid.UUID) (Settings, error)
	GetSettingsByHost(ctx context.Context, host string) (Settings, error)
	CreateSettings(ctx context.Context, s Settings) (Settings, error)
	UpdateSettings(ctx context.Context, s Settings) (Settings, error)
	Register(ctx context.Context, in NewOrganization) (Registration, error)
}

type EventEmitter interface {
	Emit(eventType string, orgID uuid.UUID, payload any)
}

type SubscriptionResult struct {
	Valid    bool
	PlanName string
	Features []string
	Message  string
}

type Service struct {
	repo   Repository
	plans  *Catalogue
	events EventEmitter
	logger *zerolog.Logger
}

func NewService(repo Repository, plans *Catalogue, events EventEmitter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		plans:  plans,
		events: events,
		logger: logger,
	}
}

func (s *Service) ValidateSubscription(code string) SubscriptionResult {
	plan, ok := s.plans.Lookup(code)
	if !ok {
		return SubscriptionResult{Message: "Invalid subscription code"}
	}
	return SubscriptionResult{
		Valid:    true,
		PlanName: plan.Name,
		Features: plan.Features,
		Message:  plan.Message,
	}
}

func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (Registration, error) {
	const op string = "service.organization.register"

	plan, ok := s.plans.Lookup(cmd.SubscriptionCode)
	if !ok {
		return Registration{}, apperror.Newf(apperror.InvalidInput, op, "invalid subscription code")
	}

	name := strings.TrimSpace(cmd.Name)
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Registration{}, apperror.Newf(apperror.AlreadyExists, op, "organization name already registered")
	} else if !apperror.IsKind(err, apperror.NotFound) {
		return Registration{}, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.AdminEmail))
	taken, err := s.repo.EmailTaken(ctx, email)
	if err != nil {
		return Registration{}, err
	}
	if taken {
		return Registration{}, apperror.Newf(apperror.AlreadyExists, op, "email already registered")
	}

	hash, err := security.HashPassword(cmd.AdminPassword)
	if err != nil {
		return Registration{}, apperror.New(apperror.Internal, op, err)
	}

	orgStatus := StatusActive
	if plan.Trial {
		orgStatus = StatusTrial
	}

	reg, err := s.repo.Register(ctx, NewOrganization{
		Name:             name,
		Domain:           strings.TrimSpace(cmd.Domain),
		SubscriptionCode: plan.Code,
		PlanName:         plan.Name,
		Status:           orgStatus,
		Admin: AdminAccount{
			FirstName:    cmd.AdminFirstName,
			LastName:     cmd.AdminLastName,
			Email:        email,
			PasswordHash: hash,
		},
	})
	if err != nil {
		return Registration{}, err
	}
	reg.Plan = plan

	s.logger.Info().
		Str("organization_id", reg.Organization.ID.String()).
		Str("plan", plan.Code).
		Str("subdomain", reg.Subdomain).
		Msg("organization registered")

	s.events.Emit(rabbitmq.OrganizationCreated, reg.Organization.ID, map[string]string{
		"name":      reg.Organization.Name,
		"subdomain": reg.Subdomain,
	})
	return reg, nil
}

func (s *Service) GetSettings(ctx context.Context, orgID uuid.UUID) (Settings, error) {
	return s.repo.GetSettings(ctx, orgID)
}

// CreateSettings is allowed once per organization.
func (s *Service) CreateSettings(ctx context.Context, orgID uuid.UUID, patch SettingsPatch) (Settings, error) {
	const op string = "service.organization.create_settings"

	if _, err := s.repo.GetSettings(ctx, orgID); err == nil {
		return Settings{}, apperror.Newf(apperror.AlreadyExists, op, "settings already exist for this organization")
	} else if !apperror.IsKind(err, apperror.NotFound) {
		return Settings{}, err
	}

	created, err := s.repo.CreateSettings(ctx, patch.Apply(DefaultSettings(orgID)))
	if err != nil {
		return Settings{}, err
	}

	s.events.Emit(rabbitmq.SettingsUpdated, orgID, map[string]string{"subdomain": created.Subdomain})
	return created, nil
}

func (s *Service) UpdateSettings(ctx context.Context, orgID uuid.UUID, patch SettingsPatch) (Settings, error) {
	current, err := s.repo.GetSettings(ctx, orgID)
	if err != nil {
		return Settings{}, err
	}

	updated, err := s.repo.UpdateSettings(ctx, patch.Apply(current))
	if err != nil {
		return Settings{}, err
	}

	s.events.Emit(rabbitmq.SettingsUpdated, orgID, map[string]string{"subdomain": updated.Subdomain})
	return updated, nil
}
