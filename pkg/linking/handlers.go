// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linking

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/canonical/org-provisioning-service/internal/http/types"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

// APIKeyHeader carries the shared secret configured on the Kratos and Hydra hooks.
const APIKeyHeader = "Authorization"

type API struct {
	service ServiceInterface
	apiKey  string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the webhooks, wrapped by the given middlewares.
func (a *API) RegisterEndpoints(mux *chi.Mux, middlewares ...func(http.Handler) http.Handler) {
	mux.Group(func(r chi.Router) {
		r.Use(a.requireAPIKey)
		r.Use(middlewares...)

		r.Post("/api/v0/webhooks/login", a.handleLogin)
		r.Post("/api/v0/webhooks/token", a.handleTokenHook)
	})
}

func (a *API) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if subtle.ConstantTimeCompare([]byte(r.Header.Get(APIKeyHeader)), []byte(a.apiKey)) != 1 {
			a.logger.Security().AuthzFailure("webhook", r.URL.Path)
			types.WriteError(w, r, status.Error(codes.Unauthenticated, "invalid webhook api key"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "linking.API.handleLogin")
	defer span.End()

	req := new(LoginWebhookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("failed to decode login webhook: %v", err)
		types.WriteError(w, r, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}

	_, err := a.service.LinkPendingMemberships(ctx, req.AccountID(), req.AccountEmail())
	if errors.Is(err, ErrInvalidLink) {
		types.WriteError(w, r, status.Error(codes.InvalidArgument, err.Error()))
		return
	}
	if err != nil {
		a.logger.Errorf("failed to link memberships for %s: %v", req.AccountID(), err)
		types.WriteError(w, r, status.Error(codes.Internal, "failed to link memberships"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleTokenHook(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "linking.API.handleTokenHook")
	defer span.End()

	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("failed to decode token hook: %v", err)
		types.WriteError(w, r, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}

	resp, err := a.service.HandleTokenHook(ctx, req)
	if err != nil {
		a.logger.Errorf("token hook failed: %v", err)
		types.WriteError(w, r, status.Error(codes.Internal, "failed to process token hook"))
		return
	}

	types.WriteJSON(w, http.StatusOK, resp)
}

func NewAPI(
	service ServiceInterface,
	apiKey string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	a.apiKey = apiKey

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
