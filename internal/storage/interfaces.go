// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/org-provisioning-service/internal/types"
)

// ClientRegistryInterface stores business contacts.
type ClientRegistryInterface interface {
	CreateClient(ctx context.Context, c *types.Client) (*types.Client, error)
	GetClientByID(ctx context.Context, id string) (*types.Client, error)
	SetClientOrganization(ctx context.Context, clientID, orgID string) error
}

// OrganizationStoreInterface stores organizations. Names are unique case-insensitively.
type OrganizationStoreInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationByName(ctx context.Context, name string) (*types.Organization, error)
	ListOrganizationsWithoutMembers(ctx context.Context, offset, limit uint64) ([]*types.Organization, error)
	CountOrganizationsWithoutMembers(ctx context.Context) (int64, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
}

// MembershipStoreInterface stores organization memberships, pending or linked.
type MembershipStoreInterface interface {
	AddMembership(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembershipByEmail(ctx context.Context, orgID, email string) (*types.Membership, error)
	ListMembershipsByOrganization(ctx context.Context, orgID string) ([]*types.Membership, error)
	LinkPendingMemberships(ctx context.Context, userID, email string) ([]*types.Membership, error)
}

// InvitationLedgerInterface is append-only.
type InvitationLedgerInterface interface {
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	ListInvitationsByOrganization(ctx context.Context, orgID string) ([]*types.Invitation, error)
}

type StorageInterface interface {
	ClientRegistryInterface
	OrganizationStoreInterface
	MembershipStoreInterface
	InvitationLedgerInterface
}
