package incident

import (
	"context"
	"fmt"
	"statuspage/internals/modules/service"
	"statuspage/pkg/apperror"
	"statuspage/pkg/rabbitmq"
	"statuspage/pkg/status"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Repository interface {
	Create(ctx context.Context, cmd CreateIncidentCmd) (Incident, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (Incident, error)
	List(ctx context.Context, f ListFilter) ([]Incident, error)
	ListSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]Incident, error)
	Update(ctx context.Context, i Incident) (Incident, error)
	Delete(ctx context.Context, id, orgID uuid.UUID) error
	Stats(ctx context.Context, orgID uuid.UUID) (Stats, error)
}

// ServiceStatuses is the slice of the service module incidents depend on.
type ServiceStatuses interface {
	Get(ctx context.Context, id, orgID uuid.UUID) (service.Service, error)
	RefreshStatus(ctx context.Context, id, orgID uuid.UUID) (service.Service, bool, error)
}

type EventEmitter interface {
	Emit(eventType string, orgID uuid.UUID, payload any)
}

type Service struct {
	repo     Repository
	services ServiceStatuses
	events   EventEmitter
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, services ServiceStatuses, events EventEmitter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		services: services,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateIncidentCmd) (Incident, error) {
	const op string = "service.incident.create"

	if cmd.Impact == "" {
		cmd.Impact = status.ImpactMedium
	}
	if !cmd.Impact.Valid() {
		return Incident{}, apperror.Newf(apperror.InvalidInput, op, "unknown impact %q", cmd.Impact)
	}

	// the service must belong to the caller's organization
	if _, err := s.services.Get(ctx, cmd.ServiceID, cmd.OrganizationID); err != nil {
		return Incident{}, err
	}

	inc, err := s.repo.Create(ctx, cmd)
	if err != nil {
		return Incident{}, err
	}

	s.afterChange(ctx, rabbitmq.IncidentCreated, inc)
	return inc, nil
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (Incident, error) {
	return s.repo.GetByID(ctx, id, orgID)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Incident, error) {
	return s.repo.List(ctx, f)
}

// ListSince returns incidents opened at or after since, newest first.
func (s *Service) ListSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]Incident, error) {
	return s.repo.ListSince(ctx, orgID, since)
}

func (s *Service) Stats(ctx context.Context, orgID uuid.UUID) (Stats, error) {
	return s.repo.Stats(ctx, orgID)
}

func (s *Service) Update(ctx context.Context, cmd UpdateIncidentCmd) (Incident, error) {
	const op string = "service.incident.update"

	inc, err := s.repo.GetByID(ctx, cmd.ID, cmd.OrganizationID)
	if err != nil {
		return Incident{}, err
	}

	if cmd.Title != nil {
		inc.Title = *cmd.Title
	}
	if cmd.Description != nil {
		inc.Description = *cmd.Description
	}
	if cmd.Impact != nil {
		if !cmd.Impact.Valid() {
			return Incident{}, apperror.Newf(apperror.InvalidInput, op, "unknown impact %q", *cmd.Impact)
		}
		inc.Impact = *cmd.Impact
	}
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			return Incident{}, apperror.Newf(apperror.InvalidInput, op, "unknown incident status %q", *cmd.Status)
		}
		s.transition(&inc, *cmd.Status)
	}

	updated, err := s.repo.Update(ctx, inc)
	if err != nil {
		return Incident{}, err
	}

	s.afterChange(ctx, rabbitmq.IncidentUpdated, updated)
	return updated, nil
}

// UpdateStatus moves the incident and appends a timestamped note to the description.
func (s *Service) UpdateStatus(ctx context.Context, cmd UpdateStatusCmd) (Incident, error) {
	const op string = "service.incident.update_status"

	if !cmd.Status.Valid() {
		return Incident{}, apperror.Newf(apperror.InvalidInput, op, "unknown incident status %q", cmd.Status)
	}

	inc, err := s.repo.GetByID(ctx, cmd.ID, cmd.OrganizationID)
	if err != nil {
		return Incident{}, err
	}

	s.transition(&inc, cmd.Status)
	if msg := strings.TrimSpace(cmd.UpdateMessage); msg != "" {
		inc.Description = AppendUpdate(inc.Description, msg, s.now())
	}

	updated, err := s.repo.Update(ctx, inc)
	if err != nil {
		return Incident{}, err
	}

	s.afterChange(ctx, rabbitmq.IncidentStatusChanged, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	inc, err := s.repo.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, orgID); err != nil {
		return err
	}

	s.afterChange(ctx, rabbitmq.IncidentDeleted, inc)
	return nil
}

// transition sets resolved_at on entering resolved and clears it on leaving.
func (s *Service) transition(inc *Incident, next status.IncidentStatus) {
	switch {
	case next == status.Resolved && inc.Status != status.Resolved:
		now := s.now().UTC()
		inc.ResolvedAt = &now
	case next != status.Resolved:
		inc.ResolvedAt = nil
	}
	inc.Status = next
}

// afterChange re-derives the owning service's status and emits the event.
// A failed re-derive is logged; the reconciler repairs it later.
func (s *Service) afterChange(ctx context.Context, eventType string, inc Incident) {
	if _, _, err := s.services.RefreshStatus(ctx, inc.ServiceID, inc.OrganizationID); err != nil {
		s.logger.Error().
			Err(err).
			Str("incident_id", inc.ID.String()).
			Str("service_id", inc.ServiceID.String()).
			Msg("failed to refresh service status after incident change")
	}

	s.events.Emit(eventType, inc.OrganizationID, map[string]string{
		"incident_id": inc.ID.String(),
		"service_id":  inc.ServiceID.String(),
		"status":      string(inc.Status),
		"impact":      string(inc.Impact),
	})
}

// AppendUpdate adds a status note in the page's markdown convention.
func AppendUpdate(description, msg string, at time.Time) string {
	note := fmt.Sprintf("**Update (%s UTC):** %s", at.UTC().Format("2006-01-02 15:04:05"), msg)
	if strings.TrimSpace(description) == "" {
		return note
	}
	return description + "\n\n" + note
}
