// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/logging"
)

type recordingTx struct {
	execs      int
	committed  bool
	rolledBack bool
}

func (tx *recordingTx) Commit() error {
	tx.committed = true
	return nil
}

func (tx *recordingTx) Rollback() error {
	tx.rolledBack = true
	return nil
}

func (tx *recordingTx) Exec(string, ...interface{}) (sql.Result, error) {
	tx.execs++
	return nil, nil
}

func (tx *recordingTx) Query(string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

var _ sq.BaseRunner = (*recordingTx)(nil)

func TestDBClient_WithTx(t *testing.T) {
	errBegin := errors.New("too many connections")

	tests := []struct {
		name            string
		beginErr        error
		fnErr           error
		expectedErr     error
		expectedExecs   int
		expectedCommit  bool
		expectedRolled  bool
		expectedBegins  int
		ignoreStatement bool
	}{
		{
			name:           "statements run in one committed transaction",
			expectedExecs:  2,
			expectedCommit: true,
			expectedBegins: 1,
		},
		{
			name:           "failing unit of work rolls back",
			fnErr:          errors.New("invitation insert failed"),
			expectedErr:    errors.New("invitation insert failed"),
			expectedExecs:  2,
			expectedRolled: true,
			expectedBegins: 1,
		},
		{
			name:           "begin failure aborts every statement",
			beginErr:       errBegin,
			expectedErr:    errBegin,
			expectedBegins: 1,
		},
		{
			name:            "begin failure surfaces even when statement errors are dropped",
			beginErr:        errBegin,
			expectedErr:     errBegin,
			expectedBegins:  1,
			ignoreStatement: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tx := new(recordingTx)
			begins := 0

			d := new(DBClient)
			d.logger = logging.NewNoopLogger()
			d.begin = func(context.Context, *sql.TxOptions) (TxInterface, error) {
				begins++
				if test.beginErr != nil {
					return nil, test.beginErr
				}
				return tx, nil
			}

			err := d.WithTx(context.Background(), func(ctx context.Context) error {
				for _, table := range []string{"memberships", "invitations"} {
					_, sErr := d.Statement(ctx).Insert(table).Columns("id").Values(1).Exec()

					if test.beginErr != nil && !errors.Is(sErr, test.beginErr) {
						t.Errorf("expected %s insert to fail with begin error, got %v", table, sErr)
					}

					if sErr != nil && !test.ignoreStatement {
						return sErr
					}
				}

				return test.fnErr
			})

			switch {
			case test.expectedErr == nil && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case test.expectedErr != nil && err == nil:
				t.Fatalf("expected error %v, got none", test.expectedErr)
			case test.beginErr != nil && !errors.Is(err, test.beginErr):
				t.Fatalf("expected begin error, got %v", err)
			}

			if begins != test.expectedBegins {
				t.Errorf("expected %d begin calls, got %d", test.expectedBegins, begins)
			}
			if tx.execs != test.expectedExecs {
				t.Errorf("expected %d statements in the transaction, got %d", test.expectedExecs, tx.execs)
			}
			if tx.committed != test.expectedCommit {
				t.Errorf("expected committed %v, got %v", test.expectedCommit, tx.committed)
			}
			if tx.rolledBack != test.expectedRolled {
				t.Errorf("expected rolled back %v, got %v", test.expectedRolled, tx.rolledBack)
			}
		})
	}
}

func TestDBClient_WithTxNested(t *testing.T) {
	tx := new(recordingTx)
	begins := 0

	d := new(DBClient)
	d.logger = logging.NewNoopLogger()
	d.begin = func(context.Context, *sql.TxOptions) (TxInterface, error) {
		begins++
		return tx, nil
	}

	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		return d.WithTx(ctx, func(inner context.Context) error {
			_, err := d.Statement(inner).Insert("memberships").Columns("id").Values(1).Exec()
			return err
		})
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if begins != 1 || !tx.committed {
		t.Errorf("expected a single committed transaction, got %d begins, committed %v", begins, tx.committed)
	}
}
