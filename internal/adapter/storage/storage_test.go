package storage

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

func TestStorageErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"NoRows", sql.ErrNoRows, domain.ErrNotFound},
		{"BadUUID", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, domain.ErrNotFound},
		{"Check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, domain.ErrValidation},
		{"Other", errors.New("connection reset"), domain.ErrPersistence},
		{"OtherPg", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, domain.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, storageErr("op", tt.err), tt.want)
		})
	}
}

func TestAffectedOne(t *testing.T) {
	assert.NoError(t, affectedOne("op", rowsAffected(1)))
	assert.ErrorIs(t, affectedOne("op", rowsAffected(0)), domain.ErrNotFound)
}
