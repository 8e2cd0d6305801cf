// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linking

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/org-provisioning-service/internal/types"
)

// StorageInterface is the subset of internal/storage used to complete
// deferred bindings.
type StorageInterface interface {
	LinkPendingMemberships(ctx context.Context, userID, email string) ([]*types.Membership, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
}

type IdentityDirectoryInterface interface {
	GetIdentity(ctx context.Context, id string) (*types.AuthAccount, error)
}

type AuthorizerInterface interface {
	AssignOrganizationOwner(ctx context.Context, orgID, userID string) error
}

type ServiceInterface interface {
	LinkPendingMemberships(ctx context.Context, authAccountID, email string) ([]*types.Membership, error)
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}
