package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, first_name, last_name, password_hash, organization_id, role, status,
	approved_by, approved_at, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.PasswordHash,
		&i.OrganizationID,
		&i.Role,
		&i.Status,
		&i.ApprovedBy,
		&i.ApprovedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, first_name, last_name, password_hash, organization_id, role, status, approved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

type CreateUserParams struct {
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	OrganizationID pgtype.UUID
	Role           string
	Status         string
	ApprovedAt     pgtype.Timestamptz
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.PasswordHash,
		arg.OrganizationID,
		arg.Role,
		arg.Status,
		arg.ApprovedAt,
	)
	return scanUser(row)
}

const getUserByID = `-- name: GetUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByEmail, email))
}

const getUserInOrg = `-- name: GetUserInOrg :one
SELECT ` + userColumns + ` FROM users WHERE id = $1 AND organization_id = $2`

func (q *Queries) GetUserInOrg(ctx context.Context, id, orgID pgtype.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserInOrg, id, orgID))
}

const listUsersByOrg = `-- name: ListUsersByOrg :many
SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY created_at DESC`

func (q *Queries) ListUsersByOrg(ctx context.Context, orgID pgtype.UUID) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsersByOrg, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []User
	for rows.Next() {
		i, err := scanUser(rows)
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

const updateUserAccess = `-- name: UpdateUserAccess :one
UPDATE users
SET status = $3, role = $4, approved_by = $5, approved_at = $6, updated_at = now()
WHERE id = $1 AND organization_id = $2
RETURNING ` + userColumns

type UpdateUserAccessParams struct {
	ID             pgtype.UUID
	OrganizationID pgtype.UUID
	Status         string
	Role           string
	ApprovedBy     pgtype.UUID
	ApprovedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateUserAccess(ctx context.Context, arg UpdateUserAccessParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserAccess,
		arg.ID,
		arg.OrganizationID,
		arg.Status,
		arg.Role,
		arg.ApprovedBy,
		arg.ApprovedAt,
	)
	return scanUser(row)
}

const updateUserRole = `-- name: UpdateUserRole :one
UPDATE users SET role = $3, updated_at = now()
WHERE id = $1 AND organization_id = $2
RETURNING ` + userColumns

func (q *Queries) UpdateUserRole(ctx context.Context, id, orgID pgtype.UUID, role string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, updateUserRole, id, orgID, role))
}
