// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

func TestNewRouter(t *testing.T) {
	logger := logging.NewNoopLogger()
	monitor := monitoring.NewNoopMonitor("org-provisioning-service", logger)
	tracer := tracing.NewNoopTracer()

	// none of these requests reach a service or the database
	router := NewRouter(nil, nil, nil, nil, "webhook-secret", nil, tracer, monitor, logger)

	tests := []struct {
		name           string
		method         string
		target         string
		headers        map[string]string
		expectedStatus int
	}{
		{name: "version", method: http.MethodGet, target: "/api/v0/version", expectedStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/api/v0/metrics", expectedStatus: http.StatusOK},
		{name: "admin api without caller", method: http.MethodPost, target: "/api/v0/organizations", expectedStatus: http.StatusUnauthorized},
		{name: "orphans without caller", method: http.MethodGet, target: "/api/v0/organizations/orphans", expectedStatus: http.StatusUnauthorized},
		{name: "webhook without api key", method: http.MethodPost, target: "/api/v0/webhooks/login", expectedStatus: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, target: "/api/v0/unknown", expectedStatus: http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.target, strings.NewReader("{}"))
			for k, v := range test.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
