package utils

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestPgFloat8(t *testing.T) {
	assert.Equal(t, pgtype.Float8{Float64: 99.9, Valid: true}, ToPgFloat8(99.9))
	assert.Equal(t, 97.5, FromPgFloat8(pgtype.Float8{Float64: 97.5, Valid: true}))
	assert.Equal(t, 0.0, FromPgFloat8(pgtype.Float8{}))
}
