// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// remoteKeySource verifies against a JWKS endpoint without OIDC discovery.
type remoteKeySource struct {
	issuer string
	keys   *oidc.RemoteKeySet
}

func (s *remoteKeySource) Verifier(config *oidc.Config) *oidc.IDTokenVerifier {
	return oidc.NewVerifier(s.issuer, s.keys, config)
}

// NewKeySource resolves the issuer keys, from jwksURL when set and through
// OIDC discovery otherwise.
func NewKeySource(ctx context.Context, issuer, jwksURL string) (KeySourceInterface, error) {
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	if jwksURL != "" {
		return &remoteKeySource{issuer: issuer, keys: oidc.NewRemoteKeySet(ctx, jwksURL)}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return provider, nil
}

// NewJWTAuthenticator builds the verifier guarding the provisioning API.
// It refuses to start without an issuer or with an empty access policy.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	policy AccessPolicy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*JWTVerifier, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	keys, err := NewKeySource(ctx, issuer, jwksURL)
	if err != nil {
		return nil, err
	}

	if jwksURL != "" {
		logger.Infof("JWT authentication is enabled with JWKS URL %s", jwksURL)
	} else {
		logger.Infof("JWT authentication is enabled with OIDC discovery for %s", issuer)
	}

	return NewJWTVerifier(keys, policy, tracer, monitor, logger), nil
}
