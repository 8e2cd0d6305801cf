// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

// HeaderName is the header used by the gateway to pass the authenticated identity ID
const HeaderName = "X-Kratos-Authenticated-Identity-Id"

type contextKey struct{}

var userContextKey = contextKey{}

// WithUserID returns a new context carrying the caller identity.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// UserIDFromContext returns the caller identity, false when absent or empty.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userContextKey).(string)
	return id, ok && id != ""
}

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HTTPMiddleware trusts the gateway header and stores its value as the caller.
// A caller already set by token authentication is left untouched.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		if _, ok := UserIDFromContext(ctx); !ok {
			if userID := r.Header.Get(HeaderName); userID != "" {
				ctx = WithUserID(ctx, userID)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
