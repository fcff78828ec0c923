package timeline

import (
	"context"
	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/organization"
	"statuspage/internals/modules/service"
	"statuspage/pkg/apperror"
	"statuspage/pkg/metrics"
	"statuspage/pkg/projector"
	"statuspage/pkg/redisstore"
	"statuspage/pkg/status"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type OrganizationResolver interface {
	Resolve(ctx context.Context, identifier string) (organization.Organization, error)
}

type ServiceLister interface {
	List(ctx context.Context, orgID uuid.UUID) ([]service.Service, error)
}

type Repository interface {
	InWindow(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]incident.Incident, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetOrgJSON(ctx context.Context, orgID uuid.UUID, key string, v any, ttl time.Duration) error
}

type Options struct {
	DefaultDays int
	MaxDays     int
	CacheTTL    time.Duration
}

type Service struct {
	orgs     OrganizationResolver
	services ServiceLister
	repo     Repository
	cache    Cache
	opts     Options
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewService(orgs OrganizationResolver, services ServiceLister, repo Repository, cache Cache, opts Options, logger *zerolog.Logger) *Service {
	return &Service{
		orgs:     orgs,
		services: services,
		repo:     repo,
		cache:    cache,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) DefaultDays() int { return s.opts.DefaultDays }

func (s *Service) Build(ctx context.Context, orgRef string, days int) (Timeline, error) {
	const op string = "service.timeline.build"

	if days < 1 || days > s.opts.MaxDays {
		return Timeline{}, apperror.Newf(apperror.InvalidInput, op, "days must be between 1 and %d", s.opts.MaxDays)
	}

	org, err := s.orgs.Resolve(ctx, orgRef)
	if err != nil {
		return Timeline{}, err
	}

	key := redisstore.TimelineKey(org.ID, days)
	if s.cache != nil {
		var cached Timeline
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("timeline cache read failed")
		}
		if hit {
			metrics.CacheLookups.WithLabelValues("timeline", "hit").Inc()
			return cached, nil
		}
		metrics.CacheLookups.WithLabelValues("timeline", "miss").Inc()
	}

	now := s.now().UTC()
	window := projector.LastDays(now, days)

	var (
		services  []service.Service
		incidents []incident.Incident
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.services.List(gctx, org.ID)
		return err
	})
	g.Go(func() error {
		var err error
		incidents, err = s.repo.InWindow(gctx, org.ID, window.Start, window.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return Timeline{}, err
	}

	tl := s.assemble(org, days, window, now, services, incidents)

	if s.cache != nil && s.opts.CacheTTL > 0 {
		if err := s.cache.SetOrgJSON(ctx, org.ID, key, tl, s.opts.CacheTTL); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to cache timeline")
		}
	}
	return tl, nil
}

func (s *Service) assemble(org organization.Organization, days int, window projector.Window, now time.Time, services []service.Service, incidents []incident.Incident) Timeline {
	rows := make([]ServiceTimeline, len(services))
	rowOf := make(map[uuid.UUID]int, len(services))
	for i, svc := range services {
		rows[i] = ServiceTimeline{
			Service: ServiceRef{
				ID:            svc.ID,
				Name:          svc.Name,
				Description:   svc.Description,
				CurrentStatus: svc.Status,
			},
			Incidents: []Block{},
		}
		rowOf[svc.ID] = i
	}

	var (
		summary       Summary
		resolvedHours float64
		resolvedCount int
	)
	for _, inc := range incidents {
		row, ok := rowOf[inc.ServiceID]
		if !ok {
			continue
		}

		block, err := s.block(inc, window, now)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("incident_id", inc.ID.String()).
				Msg("skipping incident with invalid interval")
			continue
		}

		rows[row].Incidents = append(rows[row].Incidents, block)
		rows[row].IncidentCount++

		summary.TotalIncidents++
		switch inc.Impact {
		case status.ImpactCritical:
			summary.CriticalIncidents++
		case status.ImpactHigh:
			summary.HighIncidents++
		}
		if block.IsOngoing {
			summary.OngoingIncidents++
		} else {
			resolvedHours += block.EndTime.Sub(block.StartTime).Hours()
			resolvedCount++
		}
	}
	if resolvedCount > 0 {
		summary.AverageResolutionHours = projector.Round2(resolvedHours / float64(resolvedCount))
	}

	return Timeline{
		Organization: OrganizationRef{ID: org.ID, Name: org.Name},
		Period:       Period{StartDate: window.Start, EndDate: window.End, Days: days},
		Services:     rows,
		Summary:      summary,
		ImpactLegend: legend(),
		GeneratedAt:  now,
	}
}

func (s *Service) block(inc incident.Incident, window projector.Window, now time.Time) (Block, error) {
	iv := projector.Interval{Start: inc.CreatedAt, End: inc.ResolvedAt}

	layout, err := projector.Project(iv, window, now)
	if err != nil {
		return Block{}, err
	}

	end := now
	if inc.ResolvedAt != nil {
		end = *inc.ResolvedAt
	}
	hours := projector.DurationHours(iv, now)

	return Block{
		ID:            inc.ID,
		Title:         inc.Title,
		Description:   inc.Description,
		Impact:        inc.Impact,
		Status:        inc.Status,
		Color:         inc.Impact.Color(),
		StartTime:     inc.CreatedAt,
		EndTime:       end,
		DurationHours: projector.Round2(hours),
		DurationLabel: projector.FormatDuration(hours),
		IsOngoing:     iv.Ongoing(),
		Layout:        layout.Rounded(),
	}, nil
}

func legend() map[string]LegendEntry {
	colors := status.Legend()
	out := make(map[string]LegendEntry, len(colors))
	for impact, color := range colors {
		out[impact] = LegendEntry{Color: color, Label: strings.ToUpper(impact[:1]) + impact[1:]}
	}
	return out
}
