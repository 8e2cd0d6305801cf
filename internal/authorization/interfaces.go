// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"

	"github.com/canonical/org-provisioning-service/internal/openfga"
)

type AuthorizerInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	ValidateModel(context.Context) error

	// IsAdmin reports whether the user belongs to the privileged admin group.
	IsAdmin(context.Context, string) (bool, error)
	CanViewOrganization(context.Context, string, string) (bool, error)
	AssignOrganizationOwner(context.Context, string, string) error
	// LinkOrganizationToPrivileged grants the privileged admin group access
	// to the organization.
	LinkOrganizationToPrivileged(context.Context, string) error
}

type AuthzClientInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
}
