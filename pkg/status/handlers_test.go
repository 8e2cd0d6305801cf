// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/org-provisioning-service/internal/version"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestAliveOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPinger := NewMockPingerInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "status.API.alive").Return(context.Background(), trace.SpanFromContext(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/api/v0/status", nil)
	w := httptest.NewRecorder()

	mux := chi.NewMux()
	NewAPI(mockPinger, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected HTTP status code 200 got %v", w.Code)
	}

	receivedStatus := new(Status)
	if err := json.Unmarshal(w.Body.Bytes(), receivedStatus); err != nil {
		t.Fatalf("error unmarshalling response: %v", err)
	}

	if receivedStatus.Status != "ok" {
		t.Errorf("expected status ok, got %q", receivedStatus.Status)
	}
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v0/version", nil)
	w := httptest.NewRecorder()

	mux := chi.NewMux()
	NewAPI(NewMockPingerInterface(ctrl), NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl)).RegisterEndpoints(mux)
	mux.ServeHTTP(w, req)

	receivedVersion := new(Version)
	if err := json.Unmarshal(w.Body.Bytes(), receivedVersion); err != nil {
		t.Fatalf("error unmarshalling response: %v", err)
	}

	if receivedVersion.Version != version.Version {
		t.Errorf("expected version %s, got %s", version.Version, receivedVersion.Version)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "database reachable", expectedStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockPinger := NewMockPingerInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "status.API.ready").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockPinger.EXPECT().Ping(gomock.Any()).Return(test.pingErr)
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

			req := httptest.NewRequest(http.MethodGet, "/api/v0/ready", nil)
			w := httptest.NewRecorder()

			mux := chi.NewMux()
			NewAPI(mockPinger, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Errorf("expected status %d, got %d", test.expectedStatus, w.Code)
			}
		})
	}
}
