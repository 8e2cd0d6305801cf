// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/logging"
)

type recordingDB struct {
	calls     int
	err       error
	commitErr error
}

func (r *recordingDB) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (r *recordingDB) WithTx(ctx context.Context, fn func(context.Context) error) error {
	r.calls++
	r.err = fn(ctx)
	if r.err != nil {
		return r.err
	}
	return r.commitErr
}

func (r *recordingDB) Ping(context.Context) error { return nil }

func (r *recordingDB) Close() {}

func TestTransactionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		status         int
		commitErr      error
		expectedCalls  int
		expectedErr    bool
		expectedStatus int
		expectedBody   string
	}{
		{name: "GET bypasses transaction", method: http.MethodGet, status: http.StatusOK, expectedCalls: 0, expectedStatus: http.StatusOK, expectedBody: "done"},
		{name: "HEAD bypasses transaction", method: http.MethodHead, status: http.StatusOK, expectedCalls: 0, expectedStatus: http.StatusOK},
		{name: "POST success commits", method: http.MethodPost, status: http.StatusOK, expectedCalls: 1, expectedStatus: http.StatusOK, expectedBody: "done"},
		{name: "POST no content commits", method: http.MethodPost, status: http.StatusNoContent, expectedCalls: 1, expectedStatus: http.StatusNoContent},
		{name: "POST client error rolls back", method: http.MethodPost, status: http.StatusBadRequest, expectedCalls: 1, expectedErr: true, expectedStatus: http.StatusBadRequest, expectedBody: "done"},
		{name: "POST server error rolls back", method: http.MethodPost, status: http.StatusInternalServerError, expectedCalls: 1, expectedErr: true, expectedStatus: http.StatusInternalServerError, expectedBody: "done"},
		{
			name:           "POST commit failure replaces the handler response",
			method:         http.MethodPost,
			status:         http.StatusNoContent,
			commitErr:      errors.New("connection reset"),
			expectedCalls:  1,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to persist changes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(recordingDB)
			db.commitErr = tt.commitErr

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Handler", "linking")
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent && r.Method != http.MethodHead {
					_, _ = w.Write([]byte("done"))
				}
			})

			rr := httptest.NewRecorder()
			TransactionMiddleware(db, logging.NewNoopLogger())(handler).ServeHTTP(rr, httptest.NewRequest(tt.method, "/", nil))

			if db.calls != tt.expectedCalls {
				t.Errorf("expected %d WithTx calls, got %d", tt.expectedCalls, db.calls)
			}
			if (db.err != nil) != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, db.err)
			}
			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rr.Body.String())
			}
			if tt.commitErr == nil && rr.Header().Get("X-Handler") != "linking" {
				t.Errorf("expected handler headers to be forwarded, got %v", rr.Header())
			}
		})
	}
}

func TestPagination(t *testing.T) {
	if got := PageSize(0); got != defaultPageSize {
		t.Errorf("expected default page size, got %d", got)
	}
	if got := PageSize(20); got != 20 {
		t.Errorf("expected page size 20, got %d", got)
	}
	if got := Offset(0, 20); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
	if got := Offset(3, 20); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}
