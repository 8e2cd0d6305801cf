// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/org-provisioning-service/internal/db"
	"github.com/canonical/org-provisioning-service/internal/identity"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/pkg/linking"
	"github.com/canonical/org-provisioning-service/pkg/metrics"
	"github.com/canonical/org-provisioning-service/pkg/provisioning"
	"github.com/canonical/org-provisioning-service/pkg/status"
)

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

func NewRouter(
	provisioningService provisioning.ServiceInterface,
	linkingService linking.ServiceInterface,
	authz provisioning.AuthzInterface,
	authentication Middleware,
	webhookAPIKey string,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	adminMiddlewares := make([]Middleware, 0, 2)
	if authentication != nil {
		adminMiddlewares = append(adminMiddlewares, authentication)
	}
	adminMiddlewares = append(adminMiddlewares, identity.NewMiddleware(tracer, monitor, logger).HTTPMiddleware)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)
	provisioning.NewAPI(provisioningService, authz, tracer, monitor, logger).RegisterEndpoints(router, adminMiddlewares...)
	linking.NewAPI(linkingService, webhookAPIKey, tracer, monitor, logger).RegisterEndpoints(router, db.TransactionMiddleware(dbClient, logger))

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
