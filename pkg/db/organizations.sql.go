package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const organizationColumns = `id, name, domain, subscription_code, plan_name, status, created_at, updated_at`

func scanOrganization(row pgx.Row) (Organization, error) {
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Domain,
		&i.SubscriptionCode,
		&i.PlanName,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectOrganizations(rows pgx.Rows, err error) ([]Organization, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Organization
	for rows.Next() {
		i, err := scanOrganization(rows)
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

const createOrganization = `-- name: CreateOrganization :one
INSERT INTO organizations (name, domain, subscription_code, plan_name, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + organizationColumns

type CreateOrganizationParams struct {
	Name             string
	Domain           pgtype.Text
	SubscriptionCode pgtype.Text
	PlanName         pgtype.Text
	Status           string
}

func (q *Queries) CreateOrganization(ctx context.Context, arg CreateOrganizationParams) (Organization, error) {
	row := q.db.QueryRow(ctx, createOrganization,
		arg.Name,
		arg.Domain,
		arg.SubscriptionCode,
		arg.PlanName,
		arg.Status,
	)
	return scanOrganization(row)
}

const getOrganizationByID = `-- name: GetOrganizationByID :one
SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

func (q *Queries) GetOrganizationByID(ctx context.Context, id pgtype.UUID) (Organization, error) {
	return scanOrganization(q.db.QueryRow(ctx, getOrganizationByID, id))
}

const getOrganizationByName = `-- name: GetOrganizationByName :one
SELECT ` + organizationColumns + ` FROM organizations WHERE lower(name) = lower($1)`

func (q *Queries) GetOrganizationByName(ctx context.Context, name string) (Organization, error) {
	return scanOrganization(q.db.QueryRow(ctx, getOrganizationByName, name))
}

const listPublicOrganizations = `-- name: ListPublicOrganizations :many
SELECT ` + organizationColumns + ` FROM organizations
WHERE status IN ('active', 'trial')
ORDER BY name`

func (q *Queries) ListPublicOrganizations(ctx context.Context) ([]Organization, error) {
	return collectOrganizations(q.db.Query(ctx, listPublicOrganizations))
}

const listOrganizationIDs = `-- name: ListOrganizationIDs :many
SELECT id FROM organizations ORDER BY created_at`

func (q *Queries) ListOrganizationIDs(ctx context.Context) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, listOrganizationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []pgtype.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
