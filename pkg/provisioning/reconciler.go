// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"time"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

const reconcilePageSize uint64 = 100

// Reconciler periodically reports organizations left without any membership,
// which happens when owner binding fails after the organization was created.
type Reconciler struct {
	orgs     OrganizationStoreInterface
	interval time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Run blocks until ctx is cancelled. A zero interval disables the loop.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	tick := time.NewTicker(r.interval)
	defer tick.Stop()

	for {
		if _, err := r.Reconcile(ctx); err != nil {
			r.logger.Errorf("failed to reconcile orphaned organizations: %v", err)
		}

		select {
		case <-tick.C:
		case <-ctx.Done():
			return
		}
	}
}

// Reconcile counts orphaned organizations, updates the gauge and emits one
// audit event per organization.
func (r *Reconciler) Reconcile(ctx context.Context) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "provisioning.Reconciler.Reconcile")
	defer span.End()

	total, err := r.orgs.CountOrganizationsWithoutMembers(ctx)
	if err != nil {
		return 0, err
	}

	if err := r.monitor.SetOrphanedOrganizations(float64(total)); err != nil {
		r.logger.Debugf("failed to set orphaned organizations gauge: %v", err)
	}

	for offset := uint64(0); offset < uint64(total); offset += reconcilePageSize {
		orgs, err := r.orgs.ListOrganizationsWithoutMembers(ctx, offset, reconcilePageSize)
		if err != nil {
			return total, err
		}

		for _, org := range orgs {
			r.logger.Security().OrganizationWithoutOwner(org.ID, "no membership rows")
		}

		if uint64(len(orgs)) < reconcilePageSize {
			break
		}
	}

	return total, nil
}

func NewReconciler(
	orgs OrganizationStoreInterface,
	interval time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	r := new(Reconciler)

	r.orgs = orgs
	r.interval = interval

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
