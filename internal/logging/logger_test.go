// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogger(t *testing.T) {
	l := NewLogger("DEBUG")
	if !l.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}
}

func TestInvalidLevel(t *testing.T) {
	l := NewLogger("invalid")
	if l.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected invalid level to fall back to error")
	}
	if !l.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected error level to be enabled")
	}
}

func TestSecurityLogger_OrganizationWithoutOwner(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newSecurityLogger(zap.New(core))

	s.OrganizationWithoutOwner("org-1", "membership insert failed")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["type"] != securityLogType {
		t.Errorf("expected type %q, got %v", securityLogType, fields["type"])
	}
	if fields["organization_id"] != "org-1" {
		t.Errorf("expected organization_id org-1, got %v", fields["organization_id"])
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("expected error level, got %v", entries[0].Level)
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Infof("nothing %s", "happens")
	l.Security().SystemStartup()
}
