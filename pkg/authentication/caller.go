// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/canonical/org-provisioning-service/internal/logging"
)

var (
	ErrNoAccessPolicy   = errors.New("at least one allowed subject or a required scope must be configured")
	ErrCallerNotAllowed = errors.New("token subject is not an allowed provisioning caller")
)

// Caller is the operator a provisioning request is made on behalf of.
type Caller struct {
	Subject string
	Scopes  []string
}

func (c *Caller) HasScope(scope string) bool {
	return scope != "" && slices.Contains(c.Scopes, scope)
}

// AccessPolicy decides which token holders may reach the provisioning API.
// A caller is accepted when its subject is listed or when it carries Scope.
type AccessPolicy struct {
	Subjects []string
	Scope    string
}

func (p AccessPolicy) Validate() error {
	if len(p.Subjects) == 0 && p.Scope == "" {
		return ErrNoAccessPolicy
	}

	return nil
}

func (p AccessPolicy) Permits(c *Caller) bool {
	if c == nil || c.Subject == "" {
		return false
	}

	return slices.Contains(p.Subjects, c.Subject) || c.HasScope(p.Scope)
}

// UnprivilegedSubjects returns the allowed subjects that hold no admin
// relation. Their tokens authenticate, but every organization call they make
// is then refused by the admin check.
func (p AccessPolicy) UnprivilegedSubjects(ctx context.Context, admins AdminCheckerInterface, logger logging.LoggerInterface) []string {
	missing := make([]string, 0)

	for _, subject := range p.Subjects {
		admin, err := admins.IsAdmin(ctx, subject)
		if err != nil {
			logger.Warnf("failed to check admin relation for subject %s: %v", subject, err)
			continue
		}

		if !admin {
			logger.Warnf("subject %s may authenticate but is not an admin, grant it with create-fga-model --admin %s", subject, subject)
			missing = append(missing, subject)
		}
	}

	return missing
}

// scopesFromClaims merges the space separated scope claim with the scp list
// some issuers emit instead.
func scopesFromClaims(scope string, scp []string) []string {
	scopes := strings.Fields(scope)

	for _, s := range scp {
		if !slices.Contains(scopes, s) {
			scopes = append(scopes, s)
		}
	}

	return scopes
}
