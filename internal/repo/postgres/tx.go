package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRead: один снимок для нескольких SELECT (заголовок + позиции, count + страница).
var snapshotRead = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// runTx: BeginTx / fn / Commit. Если fn вернула ошибку, транзакция откатывается.
func runTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(tx pgx.Tx) error) (err error) {
	transaction, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer rollback(ctx, transaction, &err)

	if err = fn(transaction); err != nil {
		return err
	}
	if err = transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// rollback: для defer. После Commit откат отвечает ErrTxClosed, это не ошибка;
// любая другая ошибка отката присоединяется к *err.
func rollback(ctx context.Context, tx pgx.Tx, err *error) {
	rbErr := tx.Rollback(ctx)
	if rbErr == nil || errors.Is(rbErr, pgx.ErrTxClosed) {
		return
	}
	*err = errors.Join(*err, fmt.Errorf("rollback: %w", rbErr))
}
