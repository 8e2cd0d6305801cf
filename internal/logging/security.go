// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	securityLogType = "security"
	appName         = "org-provisioning-service"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes events using the OWASP logging vocabulary
// (https://cheatsheetseries.owasp.org/cheatsheets/Logging_Vocabulary_Cheat_Sheet.html).
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Warn("Application is starting",
		zap.String("event", "sys_startup:"+appName),
	)
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Warn("Application is shutting down",
		zap.String("event", "sys_shutdown:"+appName),
	)
}

func (s *SecurityLogger) AdminAction(actorID, action, resource string) {
	s.l.Warn("Administrative action performed",
		zap.String("event", "admin_action:"+actorID+","+action+","+resource),
		zap.String("actor", actorID),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) AuthzFailure(actorID, resource string) {
	s.l.Error("Authorization failed",
		zap.String("event", "authz_fail:"+actorID+","+resource),
		zap.String("actor", actorID),
		zap.String("resource", resource),
	)
}

// OrganizationWithoutOwner reports an organization that was created but has no
// membership row, which needs manual reconciliation.
func (s *SecurityLogger) OrganizationWithoutOwner(organizationID, reason string) {
	s.l.Error("Organization has no owner membership",
		zap.String("event", "org_without_owner:"+organizationID),
		zap.String("organization_id", organizationID),
		zap.String("reason", reason),
	)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{
		l: l.With(zap.String("type", securityLogType)),
	}
}
