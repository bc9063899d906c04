package tx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	txmocks "github.com/muhammadheryan/community-market/mocks/repository/tx"
	"github.com/muhammadheryan/community-market/repository/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWithTransaction(t *testing.T) {
	errFn := errors.New("fn failed")

	tests := []struct {
		name     string
		fn       func(*sqlx.Tx) error
		mockCall func(repo *txmocks.TxRepository, tx *sqlx.Tx)
		wantErr  error
	}{
		{
			name: "commit when fn succeeds",
			fn:   func(*sqlx.Tx) error { return nil },
			mockCall: func(repo *txmocks.TxRepository, tx *sqlx.Tx) {
				repo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				repo.On("CommitTx", tx).Return(nil).Once()
			},
		},
		{
			name: "rollback and return fn error unchanged",
			fn:   func(*sqlx.Tx) error { return errFn },
			mockCall: func(repo *txmocks.TxRepository, tx *sqlx.Tx) {
				repo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				repo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: errFn,
		},
		{
			name: "rollback when commit fails",
			fn:   func(*sqlx.Tx) error { return nil },
			mockCall: func(repo *txmocks.TxRepository, tx *sqlx.Tx) {
				repo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				repo.On("CommitTx", tx).Return(errFn).Once()
				repo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: errFn,
		},
		{
			name: "begin fails",
			fn: func(*sqlx.Tx) error {
				t.Fatal("fn must not run without a transaction")
				return nil
			},
			mockCall: func(repo *txmocks.TxRepository, tx *sqlx.Tx) {
				repo.On("BeginTx", mock.Anything).Return(nil, errFn).Once()
			},
			wantErr: errFn,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := txmocks.NewTxRepository(t)
			tt.mockCall(repo, &sqlx.Tx{})

			err := tx.WithTransaction(context.Background(), repo, tt.fn)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	repo := txmocks.NewTxRepository(t)
	sqlTx := &sqlx.Tx{}
	repo.On("BeginTx", mock.Anything).Return(sqlTx, nil).Once()
	repo.On("RollbackTx", sqlTx).Return(nil).Once()

	assert.PanicsWithValue(t, "boom", func() {
		_ = tx.WithTransaction(context.Background(), repo, func(*sqlx.Tx) error {
			panic("boom")
		})
	})
}
