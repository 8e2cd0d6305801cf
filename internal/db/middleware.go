// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/canonical/org-provisioning-service/internal/http/types"
	"github.com/canonical/org-provisioning-service/internal/logging"
)

var errRequestFailed = errors.New("request failed")

// TransactionMiddleware runs every mutating request inside a single
// transaction, rolled back when the handler answers with a status >= 400.
// The response is held back until the transaction is settled, so a failed
// commit is reported as a 500 rather than the handler's answer.
// Read-only requests bypass it.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			rw := newBufferedWriter()

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.statusCode >= http.StatusBadRequest {
					return fmt.Errorf("%w with status %d", errRequestFailed, rw.statusCode)
				}

				return nil
			})

			switch {
			case err == nil:
			case errors.Is(err, errRequestFailed):
				logger.Debugf("transaction not committed for %s %s: %v", r.Method, r.URL.Path, err)
			default:
				logger.Errorf("transaction failed for %s %s: %v", r.Method, r.URL.Path, err)
				types.WriteError(w, r, status.Error(codes.Internal, "failed to persist changes"))
				return
			}

			rw.flush(w)
		})
	}
}

// bufferedWriter records a handler's response until it can be released.
type bufferedWriter struct {
	header      http.Header
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	rw := new(bufferedWriter)
	rw.header = make(http.Header)
	rw.statusCode = http.StatusOK

	return rw
}

func (rw *bufferedWriter) Header() http.Header {
	return rw.header
}

func (rw *bufferedWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}

	rw.statusCode = code
	rw.wroteHeader = true
}

func (rw *bufferedWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.body.Write(b)
}

func (rw *bufferedWriter) flush(w http.ResponseWriter) {
	for k, v := range rw.header {
		w.Header()[k] = v
	}

	w.WriteHeader(rw.statusCode)
	_, _ = rw.body.WriteTo(w)
}
