// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"

	"github.com/canonical/org-provisioning-service/internal/logging"
)

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewConfig(false, "", "", logging.NewNoopLogger()))

	_, span := tracer.Start(context.Background(), "test")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("expected noop span when tracing is disabled")
	}
}

func TestNewNoopConfig(t *testing.T) {
	if NewNoopConfig().Enabled {
		t.Error("expected noop config to be disabled")
	}
}
