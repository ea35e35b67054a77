package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// rollbackTx: pgx.Tx, у которого реализован только Rollback.
type rollbackTx struct {
	pgx.Tx
	err   error
	calls int
}

func (t *rollbackTx) Rollback(context.Context) error {
	t.calls++
	return t.err
}

func TestRollback(t *testing.T) {
	fnErr := errors.New("insert failed")
	connErr := errors.New("conn reset")

	tests := []struct {
		name     string
		prior    error
		rbErr    error
		wantNil  bool
		wantIs   []error
		wantText string
	}{
		{name: "after_commit", rbErr: pgx.ErrTxClosed, wantNil: true},
		{name: "clean_rollback_keeps_error", prior: fnErr, wantIs: []error{fnErr}},
		{name: "rollback_failure_joined", prior: fnErr, rbErr: connErr, wantIs: []error{fnErr, connErr}, wantText: "rollback: conn reset"},
		{name: "rollback_failure_alone", rbErr: connErr, wantIs: []error{connErr}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tx := &rollbackTx{err: tt.rbErr}
			err := tt.prior

			rollback(context.Background(), tx, &err)

			require.Equal(t, 1, tx.calls)
			if tt.wantNil {
				require.NoError(t, err)
				return
			}
			for _, target := range tt.wantIs {
				require.ErrorIs(t, err, target)
			}
			if tt.wantText != "" {
				require.Contains(t, err.Error(), tt.wantText)
			}
		})
	}
}
