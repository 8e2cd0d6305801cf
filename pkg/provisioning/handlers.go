// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/canonical/org-provisioning-service/internal/db"
	"github.com/canonical/org-provisioning-service/internal/http/types"
	"github.com/canonical/org-provisioning-service/internal/identity"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

const organizationsResource = "organizations"

type API struct {
	service ServiceInterface
	authz   AuthzInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the admin API. The middlewares are expected to put
// the caller identity in the request context.
func (a *API) RegisterEndpoints(mux *chi.Mux, middlewares ...func(http.Handler) http.Handler) {
	mux.Group(func(r chi.Router) {
		r.Use(middlewares...)

		r.Post("/api/v0/organizations", a.handleCreateOrganization)
		r.Get("/api/v0/organizations/orphans", a.handleListOrphans)
		r.Get("/api/v0/organizations/{id}", a.handleGetOrganization)
	})
}

func (a *API) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "provisioning.API.handleCreateOrganization")
	defer span.End()

	caller, err := a.requireAdmin(r)
	if err != nil {
		types.WriteError(w, r, err)
		return
	}

	req := new(CreateOrganizationRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		types.WriteError(w, r, status.Errorf(codes.InvalidArgument, "invalid request body: %v", err))
		return
	}

	req.InvitedBy = caller

	resp, err := a.service.CreateOrganization(ctx, req)
	if err != nil {
		a.logger.Errorf("failed to create organization %q: %v", req.Name, err)
		types.WriteError(w, r, toStatus(err))
		return
	}

	code := http.StatusCreated
	if resp.Assignment.Duplicate {
		code = http.StatusOK
	}

	types.WriteJSON(w, code, resp)
}

func (a *API) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "provisioning.API.handleGetOrganization")
	defer span.End()

	id := chi.URLParam(r, "id")

	caller, ok := identity.UserIDFromContext(ctx)
	if !ok {
		types.WriteError(w, r, status.Error(codes.Unauthenticated, "caller identity is required"))
		return
	}

	allowed, err := a.authz.CanViewOrganization(ctx, caller, id)
	if err != nil {
		a.logger.Errorf("failed to check access to organization %s: %v", id, err)
		types.WriteError(w, r, status.Error(codes.Internal, "failed to check permissions"))
		return
	}

	if !allowed {
		a.logger.Security().AuthzFailure(caller, organizationsResource+"/"+id)
		types.WriteError(w, r, status.Error(codes.PermissionDenied, "not allowed to view this organization"))
		return
	}

	details, err := a.service.GetOrganization(ctx, id)
	if err != nil {
		types.WriteError(w, r, toStatus(err))
		return
	}

	types.WriteJSON(w, http.StatusOK, details)
}

func (a *API) handleListOrphans(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "provisioning.API.handleListOrphans")
	defer span.End()

	if _, err := a.requireAdmin(r); err != nil {
		types.WriteError(w, r, err)
		return
	}

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)

	pageSize := db.PageSize(size)

	orgs, total, err := a.service.ListOrphanedOrganizations(ctx, db.Offset(page, pageSize), pageSize)
	if err != nil {
		a.logger.Errorf("failed to list orphaned organizations: %v", err)
		types.WriteError(w, r, toStatus(err))
		return
	}

	resp := &OrphanedOrganizations{
		Organizations: make([]*Organization, 0, len(orgs)),
		Total:         total,
	}
	for _, o := range orgs {
		resp.Organizations = append(resp.Organizations, organizationView(o))
	}

	types.WriteJSON(w, http.StatusOK, resp)
}

// requireAdmin returns the caller id, or a status error when the caller is
// unknown or not an administrator.
func (a *API) requireAdmin(r *http.Request) (string, error) {
	ctx := r.Context()

	caller, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "caller identity is required")
	}

	admin, err := a.authz.IsAdmin(ctx, caller)
	if err != nil {
		a.logger.Errorf("failed to check admin privileges for %s: %v", caller, err)
		return "", status.Error(codes.Internal, "failed to check permissions")
	}

	if !admin {
		a.logger.Security().AuthzFailure(caller, organizationsResource)
		return "", status.Error(codes.PermissionDenied, "caller is not an administrator")
	}

	return caller, nil
}

func NewAPI(
	service ServiceInterface,
	authz AuthzInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	a.authz = authz

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
