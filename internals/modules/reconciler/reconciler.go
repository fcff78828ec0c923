package reconciler

import (
	"context"
	"statuspage/config"
	"statuspage/internals/modules/service"
	"statuspage/pkg/db"
	"statuspage/pkg/metrics"
	"statuspage/pkg/utils"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type OrganizationLister interface {
	ListOrganizationIDs(ctx context.Context) ([]uuid.UUID, error)
}

type Refresher interface {
	ReconcileAll(ctx context.Context, orgID uuid.UUID) (service.RefreshResult, error)
}

// Reconciler periodically re-derives the status of services with open
// incidents, repairing any drift left by failed inline refreshes. Services
// without open incidents are never touched.
type Reconciler struct {
	// lifecycle
	ctx      context.Context
	interval time.Duration

	// services
	orgs      OrganizationLister
	refresher Refresher

	// misc
	logger *zerolog.Logger
}

func New(
	ctx context.Context,
	cfg *config.ReconcilerConfig,
	orgs OrganizationLister,
	refresher Refresher,
	logger *zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		ctx:       ctx,
		interval:  cfg.Interval,
		orgs:      orgs,
		refresher: refresher,
		logger:    logger,
	}
}

// Run blocks until the context is cancelled.
func (r *Reconciler) Run() {
	if r.interval <= 0 {
		panic("reconcile interval must be > 0")
	}
	r.logger.Info().Dur("interval", r.interval).Msg("Reconciler started")
	ticker := time.NewTicker(r.interval)
	defer func() {
		ticker.Stop()
		r.logger.Info().Msg("Reconciler stopped")
	}()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.Tick(r.ctx)
		}
	}
}

// Tick runs one pass over all organizations. A failing organization is
// logged and skipped.
func (r *Reconciler) Tick(ctx context.Context) service.RefreshResult {
	ids, err := r.orgs.ListOrganizationIDs(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("reconciler: failed to list organizations")
		return service.RefreshResult{}
	}

	var total service.RefreshResult
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		res, err := r.refresher.ReconcileAll(ctx, id)
		if err != nil {
			r.logger.Error().Err(err).Str("org_id", id.String()).Msg("reconciler: refresh failed")
		}
		total.Total += res.Total
		total.Changed += res.Changed

		metrics.ServicesReconciled.WithLabelValues(strconv.FormatBool(true)).Add(float64(res.Changed))
		metrics.ServicesReconciled.WithLabelValues(strconv.FormatBool(false)).Add(float64(res.Total - res.Changed))
	}

	if total.Changed > 0 {
		r.logger.Info().Int("changed", total.Changed).Int("total", total.Total).Msg("reconciler corrected service statuses")
	}
	return total
}

type repository struct {
	querier *db.Queries
	logger  *zerolog.Logger
}

func NewRepository(dbExecutor db.DBTX, logger *zerolog.Logger) *repository {
	return &repository{querier: db.New(dbExecutor), logger: logger}
}

func (r *repository) ListOrganizationIDs(ctx context.Context) ([]uuid.UUID, error) {
	const op string = "repo.reconciler.list_organization_ids"

	rows, err := r.querier.ListOrganizationIDs(ctx)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	out := make([]uuid.UUID, 0, len(rows))
	for _, id := range rows {
		out = append(out, utils.FromPgUUID(id))
	}
	return out, nil
}
