package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const incidentColumns = `id, organization_id, service_id, title, description, status, impact,
	created_at, updated_at, resolved_at`

func scanIncident(row pgx.Row) (Incident, error) {
	var i Incident
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.ServiceID,
		&i.Title,
		&i.Description,
		&i.Status,
		&i.Impact,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ResolvedAt,
	)
	return i, err
}

func collectIncidents(rows pgx.Rows, err error) ([]Incident, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Incident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createIncident = `-- name: CreateIncident :one
INSERT INTO incidents (organization_id, service_id, title, description, status, impact)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + incidentColumns

type CreateIncidentParams struct {
	OrganizationID pgtype.UUID
	ServiceID      pgtype.UUID
	Title          string
	Description    pgtype.Text
	Status         string
	Impact         string
}

func (q *Queries) CreateIncident(ctx context.Context, arg CreateIncidentParams) (Incident, error) {
	row := q.db.QueryRow(ctx, createIncident,
		arg.OrganizationID,
		arg.ServiceID,
		arg.Title,
		arg.Description,
		arg.Status,
		arg.Impact,
	)
	return scanIncident(row)
}

const getIncident = `-- name: GetIncident :one
SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1 AND organization_id = $2`

func (q *Queries) GetIncident(ctx context.Context, id, orgID pgtype.UUID) (Incident, error) {
	return scanIncident(q.db.QueryRow(ctx, getIncident, id, orgID))
}

const listIncidents = `-- name: ListIncidents :many
SELECT ` + incidentColumns + ` FROM incidents
WHERE organization_id = $1
  AND ($2::uuid IS NULL OR service_id = $2)
  AND (NOT $3::boolean OR status <> 'resolved')
ORDER BY created_at DESC`

type ListIncidentsParams struct {
	OrganizationID pgtype.UUID
	ServiceID      pgtype.UUID
	ActiveOnly     bool
}

func (q *Queries) ListIncidents(ctx context.Context, arg ListIncidentsParams) ([]Incident, error) {
	return collectIncidents(q.db.Query(ctx, listIncidents, arg.OrganizationID, arg.ServiceID, arg.ActiveOnly))
}

const listIncidentsSince = `-- name: ListIncidentsSince :many
SELECT ` + incidentColumns + ` FROM incidents
WHERE organization_id = $1 AND created_at >= $2
ORDER BY created_at DESC`

func (q *Queries) ListIncidentsSince(ctx context.Context, orgID pgtype.UUID, since pgtype.Timestamptz) ([]Incident, error) {
	return collectIncidents(q.db.Query(ctx, listIncidentsSince, orgID, since))
}

const listIncidentsInWindow = `-- name: ListIncidentsInWindow :many
SELECT ` + incidentColumns + ` FROM incidents
WHERE organization_id = $1
  AND created_at <= $3
  AND (resolved_at IS NULL OR resolved_at >= $2)
ORDER BY created_at`

// ListIncidentsInWindow returns incidents whose lifetime intersects [start, end].
func (q *Queries) ListIncidentsInWindow(ctx context.Context, orgID pgtype.UUID, start, end pgtype.Timestamptz) ([]Incident, error) {
	return collectIncidents(q.db.Query(ctx, listIncidentsInWindow, orgID, start, end))
}

const listActiveImpactsByService = `-- name: ListActiveImpactsByService :many
SELECT impact FROM incidents WHERE service_id = $1 AND status <> 'resolved'`

func (q *Queries) ListActiveImpactsByService(ctx context.Context, serviceID pgtype.UUID) ([]string, error) {
	rows, err := q.db.Query(ctx, listActiveImpactsByService, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var impact string
		if err := rows.Scan(&impact); err != nil {
			return nil, err
		}
		items = append(items, impact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateIncident = `-- name: UpdateIncident :one
UPDATE incidents
SET title = $3, description = $4, status = $5, impact = $6, resolved_at = $7, updated_at = now()
WHERE id = $1 AND organization_id = $2
RETURNING ` + incidentColumns

type UpdateIncidentParams struct {
	ID             pgtype.UUID
	OrganizationID pgtype.UUID
	Title          string
	Description    pgtype.Text
	Status         string
	Impact         string
	ResolvedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateIncident(ctx context.Context, arg UpdateIncidentParams) (Incident, error) {
	row := q.db.QueryRow(ctx, updateIncident,
		arg.ID,
		arg.OrganizationID,
		arg.Title,
		arg.Description,
		arg.Status,
		arg.Impact,
		arg.ResolvedAt,
	)
	return scanIncident(row)
}

const deleteIncident = `-- name: DeleteIncident :execrows
DELETE FROM incidents WHERE id = $1 AND organization_id = $2`

func (q *Queries) DeleteIncident(ctx context.Context, id, orgID pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteIncident, id, orgID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const incidentStats = `-- name: IncidentStats :one
SELECT
	count(*),
	count(*) FILTER (WHERE status <> 'resolved'),
	count(*) FILTER (WHERE status = 'resolved'),
	count(*) FILTER (WHERE status <> 'resolved' AND impact = 'critical')
FROM incidents WHERE organization_id = $1`

type IncidentStatsRow struct {
	Total          int64
	Active         int64
	Resolved       int64
	CriticalActive int64
}

func (q *Queries) IncidentStats(ctx context.Context, orgID pgtype.UUID) (IncidentStatsRow, error) {
	var i IncidentStatsRow
	err := q.db.QueryRow(ctx, incidentStats, orgID).Scan(&i.Total, &i.Active, &i.Resolved, &i.CriticalActive)
	return i, err
}
