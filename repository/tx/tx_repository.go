package tx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type txRepo struct {
	db *sqlx.DB
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &txRepo{db: db}
}

// BeginTx starts a READ COMMITTED transaction. Stock rows are read with
// SELECT ... FOR UPDATE so the isolation level does not decide correctness.
func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}

// WithTransaction runs fn inside one transaction. It commits when fn returns
// nil and rolls back on error or panic. The error from fn is returned as is.
func WithTransaction(ctx context.Context, repo TxRepository, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if p := recover(); p != nil {
			_ = repo.RollbackTx(tx)
			panic(p)
		}
		if !committed {
			_ = repo.RollbackTx(tx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = repo.CommitTx(tx); err != nil {
		return err
	}
	committed = true
	return nil
}
