package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeDB struct {
	tx *fakeTx
}

func (db *fakeDB) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return db.tx, nil
}

func newFixture() (*fakeTx, *TransactionManager) {
	tx := &fakeTx{}
	return tx, NewTransactionManager(&fakeDB{tx: tx})
}

func TestDoSerializableCommits(t *testing.T) {
	tx, manager := newFixture()

	var sawTx bool
	err := manager.DoSerializable(context.Background(), func(txCtx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(txCtx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
}

func TestDoSerializableRetriesSerializationConflict(t *testing.T) {
	tx, manager := newFixture()

	errInternal := errors.New("booking failed")
	errScanRow := errors.New("slotcapacity: scan row failed")

	// Ошибка сериализации всплывает при FOR UPDATE чтении внутри транзакции
	// и доходит сюда завёрнутой репозиторием и use case. Код 40001 должен
	// остаться различимым сквозь обе обёртки.
	attempts := 0
	err := manager.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		driverErr := &pq.Error{Code: "40001"}
		repoErr := fmt.Errorf("%w: GetForUpdate - scan row: %w", errScanRow, driverErr)
		return fmt.Errorf("%w: failed to lock capacity row: %w", errInternal, repoErr)
	})

	require.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxRetries, attempts)
	assert.Equal(t, maxRetries, tx.rollbacks)
	assert.Equal(t, 0, tx.commits)
}

func TestDoSerializableRetriesDeadlock(t *testing.T) {
	tx, manager := newFixture()

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("txmanager test wrap: %w", &pq.Error{Code: "40P01"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 1, tx.commits)
}

func TestDoSerializableDoesNotRetryOrdinaryErrors(t *testing.T) {
	tx, manager := newFixture()

	errBusiness := errors.New("no seats left")

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	assert.NotErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 0, tx.commits)
}
