package service

import (
	"context"
	"statuspage/pkg/apperror"
	"statuspage/pkg/rabbitmq"
	"statuspage/pkg/status"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Repository interface {
	Create(ctx context.Context, cmd CreateServiceCmd) (Service, error)
	GetByID(ctx context.Context, id, orgID uuid.UUID) (Service, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]Service, error)
	Update(ctx context.Context, s Service) (Service, error)
	SetStatus(ctx context.Context, id uuid.UUID, st status.ServiceStatus) (Service, error)
	Delete(ctx context.Context, id, orgID uuid.UUID) error
	ActiveImpacts(ctx context.Context, serviceID uuid.UUID) ([]status.IncidentImpact, error)
}

type EventEmitter interface {
	Emit(eventType string, orgID uuid.UUID, payload any)
}

// Manager is the service layer for monitored services. The name avoids
// colliding with the Service entity.
type Manager struct {
	repo   Repository
	events EventEmitter
	logger *zerolog.Logger
}

func NewManager(repo Repository, events EventEmitter, logger *zerolog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (m *Manager) Create(ctx context.Context, cmd CreateServiceCmd) (Service, error) {
	if cmd.Status == "" {
		cmd.Status = status.Operational
	}
	if !cmd.Status.Valid() {
		return Service{}, apperror.Newf(apperror.InvalidInput, "service.service.create", "unknown service status %q", cmd.Status)
	}
	if cmd.UptimePercentage == nil {
		uptime := DefaultUptimePercentage
		cmd.UptimePercentage = &uptime
	}
	if !validUptime(*cmd.UptimePercentage) {
		return Service{}, apperror.Newf(apperror.InvalidInput, "service.service.create", "uptime_percentage must be between 0 and 100")
	}

	s, err := m.repo.Create(ctx, cmd)
	if err != nil {
		return Service{}, err
	}

	m.events.Emit(rabbitmq.ServiceCreated, s.OrganizationID, eventPayload(s))
	return s, nil
}

func (m *Manager) Get(ctx context.Context, id, orgID uuid.UUID) (Service, error) {
	return m.repo.GetByID(ctx, id, orgID)
}

func (m *Manager) List(ctx context.Context, orgID uuid.UUID) ([]Service, error) {
	return m.repo.ListByOrg(ctx, orgID)
}

func (m *Manager) Update(ctx context.Context, cmd UpdateServiceCmd) (Service, error) {
	const op string = "service.service.update"

	current, err := m.repo.GetByID(ctx, cmd.ID, cmd.OrganizationID)
	if err != nil {
		return Service{}, err
	}

	if cmd.Name != nil {
		current.Name = *cmd.Name
	}
	if cmd.Description != nil {
		current.Description = *cmd.Description
	}
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			return Service{}, apperror.Newf(apperror.InvalidInput, op, "unknown service status %q", *cmd.Status)
		}
		current.Status = *cmd.Status
	}
	if cmd.UptimePercentage != nil {
		if !validUptime(*cmd.UptimePercentage) {
			return Service{}, apperror.Newf(apperror.InvalidInput, op, "uptime_percentage must be between 0 and 100")
		}
		current.UptimePercentage = *cmd.UptimePercentage
	}

	updated, err := m.repo.Update(ctx, current)
	if err != nil {
		return Service{}, err
	}

	m.events.Emit(rabbitmq.ServiceUpdated, updated.OrganizationID, eventPayload(updated))
	return updated, nil
}

func (m *Manager) UpdateStatus(ctx context.Context, id, orgID uuid.UUID, st status.ServiceStatus) (Service, error) {
	return m.Update(ctx, UpdateServiceCmd{ID: id, OrganizationID: orgID, Status: &st})
}

func (m *Manager) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	if err := m.repo.Delete(ctx, id, orgID); err != nil {
		return err
	}
	m.events.Emit(rabbitmq.ServiceDeleted, orgID, map[string]string{"service_id": id.String()})
	return nil
}

// RefreshStatus re-derives one service's status from its active incidents.
// A service in maintenance with no active incidents keeps maintenance.
func (m *Manager) RefreshStatus(ctx context.Context, id, orgID uuid.UUID) (Service, bool, error) {
	current, err := m.repo.GetByID(ctx, id, orgID)
	if err != nil {
		return Service{}, false, err
	}
	return m.refresh(ctx, current, false)
}

// refresh applies the derived status. With onlyIncidents set, a service
// without active incidents is left alone so a manually set status survives.
func (m *Manager) refresh(ctx context.Context, current Service, onlyIncidents bool) (Service, bool, error) {
	impacts, err := m.repo.ActiveImpacts(ctx, current.ID)
	if err != nil {
		return Service{}, false, err
	}
	if onlyIncidents && len(impacts) == 0 {
		return current, false, nil
	}

	next := status.DeriveServiceStatus(impacts)
	if len(impacts) == 0 && current.Status == status.Maintenance {
		next = status.Maintenance
	}
	if next == current.Status {
		return current, false, nil
	}

	updated, err := m.repo.SetStatus(ctx, current.ID, next)
	if err != nil {
		return Service{}, false, err
	}

	m.logger.Info().
		Str("service_id", updated.ID.String()).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("service status derived from incidents")
	m.events.Emit(rabbitmq.ServiceStatusChanged, updated.OrganizationID, eventPayload(updated))
	return updated, true, nil
}

// RefreshAll re-derives every service of the organization.
func (m *Manager) RefreshAll(ctx context.Context, orgID uuid.UUID) (RefreshResult, error) {
	return m.refreshOrg(ctx, orgID, false)
}

// ReconcileAll re-derives only the services that have active incidents.
// Services without any keep whatever status was last set on them.
func (m *Manager) ReconcileAll(ctx context.Context, orgID uuid.UUID) (RefreshResult, error) {
	return m.refreshOrg(ctx, orgID, true)
}

func (m *Manager) refreshOrg(ctx context.Context, orgID uuid.UUID, onlyIncidents bool) (RefreshResult, error) {
	services, err := m.repo.ListByOrg(ctx, orgID)
	if err != nil {
		return RefreshResult{}, err
	}

	res := RefreshResult{Total: len(services)}
	for _, s := range services {
		_, changed, err := m.refresh(ctx, s, onlyIncidents)
		if err != nil {
			return res, err
		}
		if changed {
			res.Changed++
		}
	}
	return res, nil
}

func validUptime(f float64) bool {
	return f >= 0 && f <= 100
}

func eventPayload(s Service) map[string]string {
	return map[string]string{
		"service_id": s.ID.String(),
		"name":       s.Name,
		"status":     string(s.Status),
	}
}
