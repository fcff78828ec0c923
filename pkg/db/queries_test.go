package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pgID(id uuid.UUID) pgtype.UUID { return pgtype.UUID{Bytes: id, Valid: true} }

func TestListActiveImpactsByService(t *testing.T) {
	dbtx := &mockDB{}
	q := New(dbtx)
	ctx := context.Background()
	svcID := pgID(uuid.New())

	impact := func(v string) func(dest ...any) error {
		return func(dest ...any) error {
			*(dest[0].(*string)) = v
			return nil
		}
	}
	dbtx.On("Query", ctx, listActiveImpactsByService, []any{svcID}).
		Return(newMockRows(impact("high"), impact("low")), nil)

	got, err := q.ListActiveImpactsByService(ctx, svcID)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, got)
	dbtx.AssertExpectations(t)
}

func TestListActiveImpactsByService_QueryError(t *testing.T) {
	dbtx := &mockDB{}
	q := New(dbtx)

	dbtx.On("Query", mock.Anything, listActiveImpactsByService, mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := q.ListActiveImpactsByService(context.Background(), pgID(uuid.New()))
	assert.EqualError(t, err, "connection reset")
}

func TestDeleteService_RowsAffected(t *testing.T) {
	dbtx := &mockDB{}
	q := New(dbtx)
	ctx := context.Background()
	id, org := pgID(uuid.New()), pgID(uuid.New())

	dbtx.On("Exec", ctx, deleteService, []any{id, org}).Return(pgconn.NewCommandTag("DELETE 1"), nil)

	n, err := q.DeleteService(ctx, id, org)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIncidentStats_Scan(t *testing.T) {
	dbtx := &mockDB{}
	q := New(dbtx)
	ctx := context.Background()
	org := pgID(uuid.New())

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int64)) = 10
		*(dest[1].(*int64)) = 3
		*(dest[2].(*int64)) = 7
		*(dest[3].(*int64)) = 1
		return nil
	}}
	dbtx.On("QueryRow", ctx, incidentStats, []any{org}).Return(row)

	got, err := q.IncidentStats(ctx, org)
	require.NoError(t, err)
	assert.Equal(t, IncidentStatsRow{Total: 10, Active: 3, Resolved: 7, CriticalActive: 1}, got)
}

func TestGetService_ScansAllColumns(t *testing.T) {
	dbtx := &mockDB{}
	q := New(dbtx)
	ctx := context.Background()
	id, org := pgID(uuid.New()), pgID(uuid.New())

	row := &mockRow{scanFunc: func(dest ...any) error {
		require.Len(t, dest, 8)
		*(dest[0].(*pgtype.UUID)) = id
		*(dest[1].(*pgtype.UUID)) = org
		*(dest[2].(*string)) = "API"
		*(dest[3].(*pgtype.Text)) = pgtype.Text{String: "public API", Valid: true}
		*(dest[4].(*string)) = "degraded"
		*(dest[5].(*pgtype.Float8)) = pgtype.Float8{Float64: 98.5, Valid: true}
		return nil
	}}
	dbtx.On("QueryRow", ctx, getService, []any{id, org}).Return(row)

	got, err := q.GetService(ctx, id, org)
	require.NoError(t, err)
	assert.Equal(t, "API", got.Name)
	assert.Equal(t, "degraded", got.Status)
	assert.Equal(t, "public API", got.Description.String)
	assert.Equal(t, 98.5, got.UptimePercentage.Float64)
}
