package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
)

type mockTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (m *mockTx) Commit() error {
	m.committed = true
	return nil
}

func (m *mockTx) Rollback() error {
	m.rolledBack = true
	return nil
}

type mockBeginner struct {
	tx       *mockTx
	opts     *sql.TxOptions
	begins   int
	beginErr error
}

func (m *mockBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	m.begins++
	m.opts = opts
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Nil(t, beginner.opts)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)
	want := errors.New("insert failed")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.False(t, beginner.tx.committed)
	assert.True(t, beginner.tx.rolledBack)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestDoSerializable_PassesIsolation(t *testing.T) {
	beginner := &mockBeginner{tx: &mockTx{}}
	mgr := NewTransactionManager(beginner)

	require.NoError(t, mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil }))
	require.NotNil(t, beginner.opts)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestDo_BeginError(t *testing.T) {
	beginner := &mockBeginner{beginErr: errors.New("connection refused")}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
}
