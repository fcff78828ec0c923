package organization

import (
	"context"
	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/service"
	"statuspage/pkg/apperror"
	"statuspage/pkg/metrics"
	"statuspage/pkg/redisstore"
	"statuspage/pkg/status"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	recentIncidentWindow = 30 * 24 * time.Hour
	brandedIncidentLimit = 10
	directoryConcurrency = 8
)

type ServiceLister interface {
	List(ctx context.Context, orgID uuid.UUID) ([]service.Service, error)
}

type IncidentLister interface {
	ListSince(ctx context.Context, orgID uuid.UUID, since time.Time) ([]incident.Incident, error)
}

// Cache is the read-through store for public views. *redisstore.Client satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetOrgJSON(ctx context.Context, orgID uuid.UUID, key string, v any, ttl time.Duration) error
	GetDirectory(ctx context.Context, dst any) (bool, error)
	SetDirectory(ctx context.Context, v any, ttl time.Duration) error
}

type CacheTTL struct {
	Status    time.Duration
	Directory time.Duration
}

// StatusPages assembles the unauthenticated views of an organization.
type StatusPages struct {
	orgs      Repository
	services  ServiceLister
	incidents IncidentLister
	cache     Cache
	ttl       CacheTTL
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewStatusPages(orgs Repository, services ServiceLister, incidents IncidentLister, cache Cache, ttl CacheTTL, logger *zerolog.Logger) *StatusPages {
	return &StatusPages{
		orgs:      orgs,
		services:  services,
		incidents: incidents,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// Resolve accepts an organization id or its exact name.
func (p *StatusPages) Resolve(ctx context.Context, identifier string) (Organization, error) {
	const op string = "service.organization.resolve"

	if id, err := uuid.Parse(identifier); err == nil {
		org, err := p.orgs.GetByID(ctx, id)
		if err == nil || !apperror.IsKind(err, apperror.NotFound) {
			return org, err
		}
	}

	org, err := p.orgs.GetByName(ctx, identifier)
	if apperror.IsKind(err, apperror.NotFound) {
		return Organization{}, apperror.Newf(apperror.NotFound, op, "organization not found")
	}
	return org, err
}

func (p *StatusPages) Status(ctx context.Context, identifier string) (StatusSnapshot, error) {
	org, err := p.Resolve(ctx, identifier)
	if err != nil {
		return StatusSnapshot{}, err
	}
	return p.snapshot(ctx, org)
}

func (p *StatusPages) snapshot(ctx context.Context, org Organization) (StatusSnapshot, error) {
	key := redisstore.StatusKey(org.ID)

	var cached StatusSnapshot
	if p.lookup(ctx, "status", key, &cached) {
		return cached, nil
	}

	snap, err := p.build(ctx, org)
	if err != nil {
		return StatusSnapshot{}, err
	}

	if err := p.cache.SetOrgJSON(ctx, org.ID, key, snap, p.ttl.Status); err != nil {
		p.logger.Error().Err(err).Str("organization_id", org.ID.String()).Msg("failed to cache status snapshot")
	}
	return snap, nil
}

// build loads services and recent incidents concurrently.
func (p *StatusPages) build(ctx context.Context, org Organization) (StatusSnapshot, error) {
	var (
		services  []service.Service
		incidents []incident.Incident
	)
	now := p.now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = p.services.List(gctx, org.ID)
		return err
	})
	g.Go(func() error {
		var err error
		incidents, err = p.incidents.ListSince(gctx, org.ID, now.Add(-recentIncidentWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return StatusSnapshot{}, err
	}

	snap := StatusSnapshot{
		Organization:  OrganizationSummary{ID: org.ID, Name: org.Name, Domain: org.Domain},
		OverallStatus: overall(services),
		Services:      make([]PublicService, 0, len(services)),
		Incidents:     make([]PublicIncident, 0, len(incidents)),
		LastUpdated:   now,
	}
	for _, s := range services {
		snap.Services = append(snap.Services, toPublicService(s))
	}
	for _, i := range incidents {
		snap.Incidents = append(snap.Incidents, toPublicIncident(i))
	}
	return snap, nil
}

func (p *StatusPages) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	var cached []DirectoryEntry
	hit, err := p.cache.GetDirectory(ctx, &cached)
	if err != nil {
		p.logger.Error().Err(err).Msg("directory cache read failed")
	}
	if hit {
		metrics.CacheLookups.WithLabelValues("directory", "hit").Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("directory", "miss").Inc()

	orgs, err := p.orgs.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, len(orgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(directoryConcurrency)
	for i, org := range orgs {
		g.Go(func() error {
			services, err := p.services.List(gctx, org.ID)
			if err != nil {
				return err
			}
			entries[i] = DirectoryEntry{
				ID:           org.ID,
				Name:         org.Name,
				Domain:       org.Domain,
				Status:       overall(services),
				ServiceCount: len(services),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := p.cache.SetDirectory(ctx, entries, p.ttl.Directory); err != nil {
		p.logger.Error().Err(err).Msg("failed to cache directory")
	}
	return entries, nil
}

// PageByHost serves the branded page for a subdomain or custom domain.
func (p *StatusPages) PageByHost(ctx context.Context, host string) (BrandedPage, error) {
	const op string = "service.organization.page_by_host"

	var cached BrandedPage
	if p.lookup(ctx, "branded", redisstore.SubdomainKey(host), &cached) {
		return cached, nil
	}

	settings, err := p.orgs.GetSettingsByHost(ctx, host)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return BrandedPage{}, apperror.Newf(apperror.NotFound, op, "status page not found")
		}
		return BrandedPage{}, err
	}

	page, err := p.branded(ctx, settings)
	if err != nil {
		return BrandedPage{}, err
	}

	if err := p.cache.SetOrgJSON(ctx, settings.OrganizationID, redisstore.SubdomainKey(host), page, p.ttl.Status); err != nil {
		p.logger.Error().Err(err).Str("host", host).Msg("failed to cache branded page")
	}
	return page, nil
}

func (p *StatusPages) PageByOrgID(ctx context.Context, orgID uuid.UUID) (BrandedPage, error) {
	const op string = "service.organization.page_by_org"

	settings, err := p.orgs.GetSettings(ctx, orgID)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return BrandedPage{}, apperror.Newf(apperror.NotFound, op, "status page not found")
		}
		return BrandedPage{}, err
	}
	return p.branded(ctx, settings)
}

func (p *StatusPages) branded(ctx context.Context, s Settings) (BrandedPage, error) {
	org, err := p.orgs.GetByID(ctx, s.OrganizationID)
	if err != nil {
		return BrandedPage{}, err
	}
	snap, err := p.snapshot(ctx, org)
	if err != nil {
		return BrandedPage{}, err
	}

	incidents := []PublicIncident{}
	if s.ShowIncidentHistory {
		incidents = snap.Incidents
		if len(incidents) > brandedIncidentLimit {
			incidents = incidents[:brandedIncidentLimit]
		}
	}

	services := make([]PublicService, len(snap.Services))
	copy(services, snap.Services)
	if !s.ShowUptimeStats {
		for i := range services {
			services[i].Uptime = nil
		}
	}

	return BrandedPage{
		OrganizationID:      org.ID,
		OrganizationName:    org.Name,
		PageTitle:           s.PageTitle,
		PageDescription:     s.PageDescription,
		LogoURL:             s.LogoURL,
		PrimaryColor:        s.PrimaryColor,
		BackgroundColor:     s.BackgroundColor,
		CustomCSS:           s.CustomCSS,
		ShowIncidentHistory: s.ShowIncidentHistory,
		ShowUptimeStats:     s.ShowUptimeStats,
		MaintenanceMode:     s.MaintenanceMode,
		MaintenanceMessage:  s.MaintenanceMessage,
		ContactEmail:        s.ContactEmail,
		SupportURL:          s.SupportURL,
		OverallStatus:       snap.OverallStatus,
		Services:            services,
		Incidents:           incidents,
	}, nil
}

// lookup reads a cached view; cache failures degrade to a miss.
func (p *StatusPages) lookup(ctx context.Context, view, key string, dst any) bool {
	hit, err := p.cache.GetJSON(ctx, key, dst)
	if err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("cache read failed")
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.CacheLookups.WithLabelValues(view, result).Inc()
	return hit
}

func overall(services []service.Service) status.OverallStatus {
	statuses := make([]status.ServiceStatus, 0, len(services))
	for _, s := range services {
		statuses = append(statuses, s.Status)
	}
	return status.Aggregate(statuses)
}

func toPublicService(s service.Service) PublicService {
	uptime := s.UptimePercentage
	return PublicService{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		Uptime:      &uptime,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toPublicIncident(i incident.Incident) PublicIncident {
	return PublicIncident{
		ID:          i.ID,
		ServiceID:   i.ServiceID,
		Title:       i.Title,
		Description: i.Description,
		Status:      i.Status,
		Impact:      i.Impact,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		ResolvedAt:  i.ResolvedAt,
	}
}
