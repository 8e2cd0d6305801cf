// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Security() SecurityLoggerInterface
	Sync() error
}

// SecurityLoggerInterface emits audit events that operators are expected to alert on.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AdminAction(actorID, action, resource string)
	AuthzFailure(actorID, resource string)
	OrganizationWithoutOwner(organizationID, reason string)
}
