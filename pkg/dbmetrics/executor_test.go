package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM tables", "select"},
		{"  insert into bookings (id) values ($1)", "insert"},
		{"UPDATE bookings SET status = $1", "update"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, operation(tt.query), tt.query)
	}
}

// *sql.DB и *sql.Tx должны подходить под интерфейсы без обёрток
var (
	_ DBExecutor = (*sql.DB)(nil)
	_ TxExecutor = (*sql.Tx)(nil)
	_ DBExecutor = (*DB)(nil)
	_ TxExecutor = (*Tx)(nil)
)
