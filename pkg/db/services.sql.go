package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const serviceColumns = `id, organization_id, name, description, status, uptime_percentage, created_at, updated_at`

func scanService(row pgx.Row) (Service, error) {
	var i Service
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Name,
		&i.Description,
		&i.Status,
		&i.UptimePercentage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createService = `-- name: CreateService :one
INSERT INTO services (organization_id, name, description, status, uptime_percentage)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + serviceColumns

type CreateServiceParams struct {
	OrganizationID   pgtype.UUID
	Name             string
	Description      pgtype.Text
	Status           string
	UptimePercentage pgtype.Float8
}

func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (Service, error) {
	row := q.db.QueryRow(ctx, createService, arg.OrganizationID, arg.Name, arg.Description, arg.Status, arg.UptimePercentage)
	return scanService(row)
}

const getService = `-- name: GetService :one
SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND organization_id = $2`

func (q *Queries) GetService(ctx context.Context, id, orgID pgtype.UUID) (Service, error) {
	return scanService(q.db.QueryRow(ctx, getService, id, orgID))
}

const listServicesByOrg = `-- name: ListServicesByOrg :many
SELECT ` + serviceColumns + ` FROM services WHERE organization_id = $1 ORDER BY name`

func (q *Queries) ListServicesByOrg(ctx context.Context, orgID pgtype.UUID) ([]Service, error) {
	rows, err := q.db.Query(ctx, listServicesByOrg, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Service
	for rows.Next() {
		i, err := scanService(rows)
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

const updateService = `-- name: UpdateService :one
UPDATE services SET name = $3, description = $4, status = $5, uptime_percentage = $6, updated_at = now()
WHERE id = $1 AND organization_id = $2
RETURNING ` + serviceColumns

type UpdateServiceParams struct {
	ID               pgtype.UUID
	OrganizationID   pgtype.UUID
	Name             string
	Description      pgtype.Text
	Status           string
	UptimePercentage pgtype.Float8
}

func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (Service, error) {
	row := q.db.QueryRow(ctx, updateService, arg.ID, arg.OrganizationID, arg.Name, arg.Description, arg.Status, arg.UptimePercentage)
	return scanService(row)
}

const updateServiceStatus = `-- name: UpdateServiceStatus :one
UPDATE services SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + serviceColumns

func (q *Queries) UpdateServiceStatus(ctx context.Context, id pgtype.UUID, status string) (Service, error) {
	return scanService(q.db.QueryRow(ctx, updateServiceStatus, id, status))
}

const deleteService = `-- name: DeleteService :execrows
DELETE FROM services WHERE id = $1 AND organization_id = $2`

func (q *Queries) DeleteService(ctx context.Context, id, orgID pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteService, id, orgID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
