// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/openfga"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	client AuthzClientInterface

	// adminGroup is the privileged object whose admins may provision organizations
	adminGroup string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, user string, relation string, object string, contextualTuples ...openfga.Tuple) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	return a.client.Check(ctx, user, relation, object, contextualTuples...)
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	v0AuthzModel := NewAuthorizationModelProvider("v0")
	model := *v0AuthzModel.GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) IsAdmin(ctx context.Context, userId string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.IsAdmin")
	defer span.End()

	return a.client.Check(ctx, UserTuple(userId), ADMIN_RELATION, PrivilegedTuple(a.adminGroup))
}

func (a *Authorizer) CanViewOrganization(ctx context.Context, userId, orgId string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanViewOrganization")
	defer span.End()

	return a.client.Check(ctx, UserTuple(userId), CAN_VIEW_PERMISSION, OrganizationTuple(orgId))
}

func (a *Authorizer) AssignOrganizationOwner(ctx context.Context, orgId, userId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignOrganizationOwner")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userId), OWNER_RELATION, OrganizationTuple(orgId))
}

func (a *Authorizer) LinkOrganizationToPrivileged(ctx context.Context, orgId string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.LinkOrganizationToPrivileged")
	defer span.End()

	return a.client.WriteTuple(ctx, PrivilegedTuple(a.adminGroup), PRIVILEGED_RELATION, OrganizationTuple(orgId))
}

func NewAuthorizer(client AuthzClientInterface, adminGroup string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.adminGroup = adminGroup
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
