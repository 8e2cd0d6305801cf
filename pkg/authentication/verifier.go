// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

const organizationsResource = "organizations"

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   AccessPolicy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*Caller, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Scope  string   `json:"scope"`
		Scopes []string `json:"scp"`
	}

	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("failed to extract scope claims: %v", err)
		return nil, err
	}

	caller := &Caller{
		Subject: token.Subject,
		Scopes:  scopesFromClaims(claims.Scope, claims.Scopes),
	}

	if !v.policy.Permits(caller) {
		v.logger.Security().AuthzFailure(caller.Subject, organizationsResource)
		return nil, ErrCallerNotAllowed
	}

	return caller, nil
}

// NewJWTVerifier accepts tokens signed by keys and whose caller the policy
// permits. Access tokens carry no client id audience, so that check is off.
func NewJWTVerifier(
	keys KeySourceInterface,
	policy AccessPolicy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	v := new(JWTVerifier)
	v.verifier = keys.Verifier(&oidc.Config{SkipClientIDCheck: true})
	v.policy = policy
	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
