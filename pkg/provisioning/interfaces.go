// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"

	"github.com/canonical/org-provisioning-service/internal/types"
)

type ServiceInterface interface {
	CreateOrganization(context.Context, *CreateOrganizationRequest) (*CreateOrganizationResponse, error)
	GetOrganization(context.Context, string) (*OrganizationDetails, error)
	ListOrphanedOrganizations(context.Context, uint64, uint64) ([]*types.Organization, int64, error)
}

// ClientRegistryInterface stores business contacts.
type ClientRegistryInterface interface {
	CreateClient(context.Context, *types.Client) (*types.Client, error)
	GetClientByID(context.Context, string) (*types.Client, error)
	SetClientOrganization(ctx context.Context, clientID, orgID string) error
}

// OrganizationStoreInterface stores organizations, unique by case-insensitive name.
type OrganizationStoreInterface interface {
	CreateOrganization(context.Context, *types.Organization) (*types.Organization, error)
	GetOrganizationByID(context.Context, string) (*types.Organization, error)
	GetOrganizationByName(context.Context, string) (*types.Organization, error)
	ListOrganizationsWithoutMembers(ctx context.Context, offset, limit uint64) ([]*types.Organization, error)
	CountOrganizationsWithoutMembers(context.Context) (int64, error)
}

type MembershipStoreInterface interface {
	AddMembership(context.Context, *types.Membership) (*types.Membership, error)
	GetMembershipByEmail(ctx context.Context, orgID, email string) (*types.Membership, error)
	ListMembershipsByOrganization(context.Context, string) ([]*types.Membership, error)
}

type InvitationLedgerInterface interface {
	CreateInvitation(context.Context, *types.Invitation) (*types.Invitation, error)
	ListInvitationsByOrganization(context.Context, string) ([]*types.Invitation, error)
}

// IdentityDirectoryInterface looks up authentication identities.
// A nil account with a nil error means no identity matches.
type IdentityDirectoryInterface interface {
	FindIdentityByEmail(context.Context, string) (*types.AuthAccount, error)
}

type TransactorInterface interface {
	WithTx(context.Context, func(context.Context) error) error
}

type AuthzInterface interface {
	IsAdmin(context.Context, string) (bool, error)
	CanViewOrganization(ctx context.Context, userID, orgID string) (bool, error)
	AssignOrganizationOwner(ctx context.Context, orgID, userID string) error
	LinkOrganizationToPrivileged(context.Context, string) error
}

type NotifierInterface interface {
	SendWelcomeEmail(ctx context.Context, email, organizationName string)
}
