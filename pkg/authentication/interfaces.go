// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
)

// KeySourceInterface builds verifiers bound to the signing keys of an issuer.
type KeySourceInterface interface {
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken checks the signature of rawToken and the access policy,
	// returning the provisioning caller the token was issued to
	VerifyToken(ctx context.Context, rawToken string) (*Caller, error)
}

// AdminCheckerInterface is satisfied by the authorizer.
type AdminCheckerInterface interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
