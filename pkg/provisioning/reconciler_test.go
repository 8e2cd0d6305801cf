// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/org-provisioning-service/internal/types"
)

func orphans(from, n int) []*types.Organization {
	orgs := make([]*types.Organization, 0, n)
	for i := from; i < from+n; i++ {
		orgs = append(orgs, &types.Organization{ID: fmt.Sprintf("org-%d", i)})
	}
	return orgs
}

func TestReconcilerReconcile(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*fixture)
		expected   int64
		expectErr  bool
	}{
		{
			name: "no orphans",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(0), nil)
				f.monitor.EXPECT().SetOrphanedOrganizations(float64(0)).Return(nil)
			},
			expected: 0,
		},
		{
			name: "pages through orphans",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(102), nil)
				f.monitor.EXPECT().SetOrphanedOrganizations(float64(102)).Return(nil)
				f.orgs.EXPECT().ListOrganizationsWithoutMembers(gomock.Any(), uint64(0), reconcilePageSize).Return(orphans(0, 100), nil)
				f.orgs.EXPECT().ListOrganizationsWithoutMembers(gomock.Any(), uint64(100), reconcilePageSize).Return(orphans(100, 2), nil)
				f.security.EXPECT().OrganizationWithoutOwner(gomock.Any(), "no membership rows").Times(102)
			},
			expected: 102,
		},
		{
			name: "count fails",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(0), errors.New("boom"))
			},
			expectErr: true,
		},
		{
			name: "listing fails after gauge update",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(1), nil)
				f.monitor.EXPECT().SetOrphanedOrganizations(float64(1)).Return(nil)
				f.orgs.EXPECT().ListOrganizationsWithoutMembers(gomock.Any(), uint64(0), reconcilePageSize).Return(nil, errors.New("boom"))
			},
			expected:  1,
			expectErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.tracer.EXPECT().Start(gomock.Any(), "provisioning.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
			f.logger.EXPECT().Security().Return(f.security).AnyTimes()
			test.setupMocks(f)

			total, err := NewReconciler(f.orgs, time.Minute, f.tracer, f.monitor, f.logger).Reconcile(context.Background())

			if (err != nil) != test.expectErr {
				t.Fatalf("expected error %v, got %v", test.expectErr, err)
			}

			if total != test.expected {
				t.Errorf("expected %d orphans, got %d", test.expected, total)
			}
		})
	}
}

func TestReconcilerRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.tracer.EXPECT().Start(gomock.Any(), "provisioning.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background())).MinTimes(1)
	f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(0), nil).MinTimes(1)
	f.monitor.EXPECT().SetOrphanedOrganizations(float64(0)).Return(nil).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewReconciler(f.orgs, time.Hour, f.tracer, f.monitor, f.logger).Run(ctx)
		close(done)
	}()

	// the first pass runs immediately, the next one only after an hour
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}

func TestReconcilerRunDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	// returns immediately without touching the store
	NewReconciler(f.orgs, 0, f.tracer, f.monitor, f.logger).Run(context.Background())
}
