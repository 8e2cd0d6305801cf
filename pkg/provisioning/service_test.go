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

	"github.com/canonical/org-provisioning-service/internal/storage"
	"github.com/canonical/org-provisioning-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const invitationLifetime = 30 * 24 * time.Hour

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	clients     *MockClientRegistryInterface
	orgs        *MockOrganizationStoreInterface
	memberships *MockMembershipStoreInterface
	invitations *MockInvitationLedgerInterface
	directory   *MockIdentityDirectoryInterface
	tx          *MockTransactorInterface
	authz       *MockAuthzInterface
	notifier    *MockNotifierInterface
	tracer      *MockTracingInterface
	monitor     *MockMonitorInterface
	logger      *MockLoggerInterface
	security    *MockSecurityLoggerInterface
}

func newFixture(ctrl *gomock.Controller) *fixture {
	return &fixture{
		clients:     NewMockClientRegistryInterface(ctrl),
		orgs:        NewMockOrganizationStoreInterface(ctrl),
		memberships: NewMockMembershipStoreInterface(ctrl),
		invitations: NewMockInvitationLedgerInterface(ctrl),
		directory:   NewMockIdentityDirectoryInterface(ctrl),
		tx:          NewMockTransactorInterface(ctrl),
		authz:       NewMockAuthzInterface(ctrl),
		notifier:    NewMockNotifierInterface(ctrl),
		tracer:      NewMockTracingInterface(ctrl),
		monitor:     NewMockMonitorInterface(ctrl),
		logger:      NewMockLoggerInterface(ctrl),
		security:    NewMockSecurityLoggerInterface(ctrl),
	}
}

func (f *fixture) service() *Service {
	s := NewService(
		f.clients, f.orgs, f.memberships, f.invitations, f.directory, f.tx, f.authz, f.notifier,
		invitationLifetime, f.tracer, f.monitor, f.logger,
	)
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) expectRun(outcome string) {
	f.tracer.EXPECT().Start(gomock.Any(), "provisioning.Service.CreateOrganization").Return(context.Background(), trace.SpanFromContext(context.Background()))
	f.monitor.EXPECT().IncrementProvisioningRequests(map[string]string{"outcome": outcome}).Return(nil)
	f.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Security().Return(f.security).AnyTimes()
}

func (f *fixture) expectTx() {
	f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func danaRequest() *CreateOrganizationRequest {
	return &CreateOrganizationRequest{
		Name:      "Dana Salon",
		Category:  "beauty",
		Plan:      "starter",
		NewClient: &NewClient{FirstName: "Dana", LastName: "Cohen", Email: "dana@x.com"},
		InvitedBy: "operator-1",
	}
}

func createdOrg(o *types.Organization) *types.Organization {
	created := *o
	created.ID = "org-1"
	created.CreatedAt = fixedNow
	return &created
}

func TestServiceCreateOrganizationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateOrganizationRequest
		message string
	}{
		{
			name:    "nil request",
			req:     nil,
			message: "request is required",
		},
		{
			name:    "neither client mode",
			req:     &CreateOrganizationRequest{Name: "Org", Category: "c", Plan: "p"},
			message: "exactly one of clientId or newClient must be provided",
		},
		{
			name: "both client modes",
			req: &CreateOrganizationRequest{
				Name: "Org", Category: "c", Plan: "p", ClientID: "client-1",
				NewClient: &NewClient{FirstName: "A", LastName: "B", Email: "a@b.com"},
			},
			message: "exactly one of clientId or newClient must be provided",
		},
		{
			name:    "missing name",
			req:     &CreateOrganizationRequest{Name: "   ", Category: "c", Plan: "p", ClientID: "client-1"},
			message: "name is required",
		},
		{
			name:    "missing plan",
			req:     &CreateOrganizationRequest{Name: "Org", Category: "c", ClientID: "client-1"},
			message: "plan is required",
		},
		{
			name: "new client without last name",
			req: &CreateOrganizationRequest{
				Name: "Org", Category: "c", Plan: "p",
				NewClient: &NewClient{FirstName: "A", Email: "a@b.com"},
			},
			message: "newClient.lastName is required",
		},
		{
			name: "new client with malformed email",
			req: &CreateOrganizationRequest{
				Name: "Org", Category: "c", Plan: "p",
				NewClient: &NewClient{FirstName: "A", LastName: "B", Email: "not-an-email"},
			},
			message: "newClient.email must be a valid email address",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.expectRun("invalid")

			// no store expectations: any write fails the test
			resp, err := f.service().CreateOrganization(context.Background(), test.req)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			if validationErr.Message != test.message {
				t.Errorf("expected message %q, got %q", test.message, validationErr.Message)
			}

			if resp != nil {
				t.Errorf("expected no response, got %+v", resp)
			}
		})
	}
}

func TestServiceCreateOrganizationExistingClient(t *testing.T) {
	tests := []struct {
		name      string
		client    *types.Client
		clientErr error
		outcome   string
		check     func(*testing.T, error)
	}{
		{
			name:      "client not found",
			clientErr: fmt.Errorf("get client: %w", storage.ErrNotFound),
			outcome:   "not_found",
			check: func(t *testing.T, err error) {
				var notFoundErr *NotFoundError
				if !errors.As(err, &notFoundErr) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
			},
		},
		{
			name:    "client without email",
			client:  &types.Client{ID: "client-9", FirstName: "No", LastName: "Mail"},
			outcome: "invalid",
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			},
		},
		{
			name:      "registry failure",
			clientErr: errors.New("connection reset"),
			outcome:   "failed",
			check: func(t *testing.T, err error) {
				var persistenceErr *PersistenceError
				if !errors.As(err, &persistenceErr) {
					t.Fatalf("expected PersistenceError, got %v", err)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.expectRun(test.outcome)
			f.clients.EXPECT().GetClientByID(gomock.Any(), "client-9").Return(test.client, test.clientErr)

			_, err := f.service().CreateOrganization(
				context.Background(),
				&CreateOrganizationRequest{Name: "Org", Category: "c", Plan: "p", ClientID: "client-9"},
			)

			test.check(t, err)
		})
	}
}

func TestServiceCreateOrganizationDeferredBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.expectRun("deferred")

	f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "Dana Salon").Return(nil, storage.ErrNotFound)
	f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *types.Client) (*types.Client, error) {
			if c.OrgID != nil {
				t.Errorf("new client must not reference an organization yet")
			}
			created := *c
			created.ID = "client-7"
			return &created, nil
		},
	)
	f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *types.Organization) (*types.Organization, error) {
			return createdOrg(o), nil
		},
	)
	f.authz.EXPECT().LinkOrganizationToPrivileged(gomock.Any(), "org-1").Return(nil)
	f.clients.EXPECT().SetClientOrganization(gomock.Any(), "client-7", "org-1").Return(nil)
	f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(nil, nil)
	f.expectTx()
	f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *types.Membership) (*types.Membership, error) {
			if m.UserID != nil {
				t.Errorf("expected pending membership, got user %q", *m.UserID)
			}
			if m.Email != "dana@x.com" || m.Role != types.RoleOwner {
				t.Errorf("unexpected membership %+v", m)
			}
			created := *m
			created.ID = "membership-1"
			return &created, nil
		},
	)
	f.invitations.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, i *types.Invitation) (*types.Invitation, error) {
			if !i.ExpiresAt.Equal(fixedNow.Add(30 * 24 * time.Hour)) {
				t.Errorf("expected 30 day expiry, got %v", i.ExpiresAt)
			}
			if i.InvitedBy != "operator-1" {
				t.Errorf("expected invitation by operator-1, got %q", i.InvitedBy)
			}
			created := *i
			created.ID = "invitation-1"
			return &created, nil
		},
	)
	f.notifier.EXPECT().SendWelcomeEmail(gomock.Any(), "dana@x.com", "Dana Salon")
	f.security.EXPECT().AdminAction("operator-1", "create_organization", "org-1")

	resp, err := f.service().CreateOrganization(context.Background(), danaRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := resp.Assignment
	if a.Immediate || !a.Invitation || a.Duplicate {
		t.Errorf("expected deferred binding, got %+v", a)
	}

	if a.UserID != "" {
		t.Errorf("deferred binding must not carry a user id, got %q", a.UserID)
	}

	if a.ClientID != "client-7" || resp.Client.ID != "client-7" || !resp.Client.DisplayOnly {
		t.Errorf("unexpected client summary %+v / assignment %+v", resp.Client, a)
	}

	if a.ExpiresAt == nil || !a.ExpiresAt.Equal(fixedNow.Add(invitationLifetime)) {
		t.Errorf("unexpected expiry %v", a.ExpiresAt)
	}

	if a.InvitationID != "invitation-1" || a.MembershipID != "membership-1" {
		t.Errorf("unexpected ids %+v", a)
	}
}

func TestServiceCreateOrganizationImmediateBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.expectRun("immediate")

	f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "Dana Salon").Return(nil, storage.ErrNotFound)
	f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *types.Client) (*types.Client, error) {
			created := *c
			created.ID = "client-7"
			return &created, nil
		},
	)
	f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *types.Organization) (*types.Organization, error) {
			return createdOrg(o), nil
		},
	)
	f.authz.EXPECT().LinkOrganizationToPrivileged(gomock.Any(), "org-1").Return(nil)
	f.clients.EXPECT().SetClientOrganization(gomock.Any(), "client-7", "org-1").Return(nil)
	f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(&types.AuthAccount{ID: "auth-42", Email: "dana@x.com"}, nil)
	f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *types.Membership) (*types.Membership, error) {
			if m.UserID == nil || *m.UserID != "auth-42" {
				t.Errorf("membership user must be the auth account id, got %v", m.UserID)
			}
			created := *m
			created.ID = "membership-1"
			return &created, nil
		},
	)
	f.authz.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "auth-42").Return(nil)
	f.notifier.EXPECT().SendWelcomeEmail(gomock.Any(), "dana@x.com", "Dana Salon")
	f.security.EXPECT().AdminAction("operator-1", "create_organization", "org-1")

	// no InvitationLedger or transaction expectations: an invitation would fail the test
	resp, err := f.service().CreateOrganization(context.Background(), danaRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := resp.Assignment
	if !a.Immediate || a.Invitation {
		t.Errorf("expected immediate binding, got %+v", a)
	}

	if a.UserID != "auth-42" {
		t.Errorf("expected user auth-42, got %q", a.UserID)
	}

	if a.UserID == resp.Client.ID || a.UserID == a.ClientID {
		t.Errorf("user id %q must not be a client id", a.UserID)
	}
}

func TestServiceCreateOrganizationDuplicate(t *testing.T) {
	linkedUser := "auth-42"
	existing := &types.Organization{ID: "org-1", Name: "Dana Salon", Email: "dana@x.com", Category: "beauty", Plan: "starter"}

	tests := []struct {
		name          string
		membership    *types.Membership
		membershipErr error
		check         func(*testing.T, *Assignment)
	}{
		{
			name:       "linked owner",
			membership: &types.Membership{ID: "membership-1", OrgID: "org-1", UserID: &linkedUser, Email: "dana@x.com", Role: types.RoleOwner},
			check: func(t *testing.T, a *Assignment) {
				if !a.Immediate || a.UserID != linkedUser || a.Note != noteDuplicate {
					t.Errorf("unexpected assignment %+v", a)
				}
			},
		},
		{
			name:       "pending owner",
			membership: &types.Membership{ID: "membership-1", OrgID: "org-1", Email: "dana@x.com", Role: types.RoleOwner},
			check: func(t *testing.T, a *Assignment) {
				if a.Immediate || !a.Invitation || a.UserID != "" {
					t.Errorf("unexpected assignment %+v", a)
				}
			},
		},
		{
			name:          "no membership for email",
			membershipErr: storage.ErrNotFound,
			check: func(t *testing.T, a *Assignment) {
				if a.Immediate || a.Invitation || a.Note != noteDuplicateNoOwner {
					t.Errorf("unexpected assignment %+v", a)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.expectRun("duplicate")

			// only the two reads are expected
			f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "DANA salon").Return(existing, nil)
			f.memberships.EXPECT().GetMembershipByEmail(gomock.Any(), "org-1", "dana@x.com").Return(test.membership, test.membershipErr)

			req := danaRequest()
			req.Name = "DANA salon"
			req.NewClient.Email = "Dana@X.com"

			resp, err := f.service().CreateOrganization(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.Organization.ID != "org-1" || !resp.Assignment.Duplicate {
				t.Fatalf("expected duplicate of org-1, got %+v", resp)
			}

			test.check(t, resp.Assignment)
		})
	}
}

func TestServiceCreateOrganizationConcurrentDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.logger.EXPECT().Warnf(gomock.Any(), "client-7", "Dana Salon").Times(1)
	f.expectRun("duplicate")

	existing := &types.Organization{ID: "org-winner", Name: "Dana Salon", Email: "dana@x.com"}

	gomock.InOrder(
		f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "Dana Salon").Return(nil, storage.ErrNotFound),
		f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "Dana Salon").Return(existing, nil),
	)
	f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(&types.Client{ID: "client-7", Email: "dana@x.com"}, nil)
	f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("create organization: %w", storage.ErrDuplicateKey))
	f.memberships.EXPECT().GetMembershipByEmail(gomock.Any(), "org-winner", "dana@x.com").Return(nil, storage.ErrNotFound)

	resp, err := f.service().CreateOrganization(context.Background(), danaRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Organization.ID != "org-winner" || !resp.Assignment.Duplicate {
		t.Errorf("expected the conflicting organization, got %+v", resp)
	}
}

func TestServiceCreateOrganizationNormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.expectRun("deferred")

	client := &types.Client{ID: "client-3", FirstName: "Foo", LastName: "Bar", Email: "Foo@Bar.COM", Phone: "555-0100"}

	f.clients.EXPECT().GetClientByID(gomock.Any(), "client-3").Return(client, nil)
	f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), "Foo Bar Ltd").Return(nil, storage.ErrNotFound)
	f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *types.Organization) (*types.Organization, error) {
			if o.Email != "foo@bar.com" {
				t.Errorf("expected normalized organization email, got %q", o.Email)
			}
			if o.Phone != "555-0100" {
				t.Errorf("expected phone from client, got %q", o.Phone)
			}
			return createdOrg(o), nil
		},
	)
	f.authz.EXPECT().LinkOrganizationToPrivileged(gomock.Any(), "org-1").Return(nil)
	f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "foo@bar.com").Return(nil, nil)
	f.expectTx()
	f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *types.Membership) (*types.Membership, error) {
			if m.Email != "foo@bar.com" {
				t.Errorf("expected normalized membership email, got %q", m.Email)
			}
			return m, nil
		},
	)
	f.invitations.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, i *types.Invitation) (*types.Invitation, error) {
			return i, nil
		},
	)
	f.notifier.EXPECT().SendWelcomeEmail(gomock.Any(), "foo@bar.com", "Foo Bar Ltd")
	f.security.EXPECT().AdminAction(gomock.Any(), "create_organization", "org-1")

	// existing clients are never re-linked to the organization
	resp, err := f.service().CreateOrganization(
		context.Background(),
		&CreateOrganizationRequest{Name: "Foo Bar Ltd", Category: "c", Plan: "p", ClientID: "client-3"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Organization.Email != "foo@bar.com" {
		t.Errorf("expected normalized organization email, got %q", resp.Organization.Email)
	}
}

func TestServiceCreateOrganizationBackReferenceFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.expectRun("immediate")

	f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(&types.Client{ID: "client-7", Email: "dana@x.com"}, nil)
	f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *types.Organization) (*types.Organization, error) {
			return createdOrg(o), nil
		},
	)
	f.authz.EXPECT().LinkOrganizationToPrivileged(gomock.Any(), "org-1").Return(errors.New("fga unavailable"))
	f.clients.EXPECT().SetClientOrganization(gomock.Any(), "client-7", "org-1").Return(errors.New("deadlock detected"))
	f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(&types.AuthAccount{ID: "auth-42"}, nil)
	f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *types.Membership) (*types.Membership, error) {
			return m, nil
		},
	)
	f.authz.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "auth-42").Return(errors.New("fga unavailable"))
	f.notifier.EXPECT().SendWelcomeEmail(gomock.Any(), "dana@x.com", "Dana Salon")
	f.security.EXPECT().AdminAction(gomock.Any(), gomock.Any(), gomock.Any())

	resp, err := f.service().CreateOrganization(context.Background(), danaRequest())
	if err != nil {
		t.Fatalf("back-reference and authz failures must not fail the request: %v", err)
	}

	if !resp.Success {
		t.Error("expected success")
	}
}

func TestServiceCreateOrganizationOwnerBindingFailures(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*fixture)
	}{
		{
			name: "identity directory unavailable",
			setupMocks: func(f *fixture) {
				f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(nil, errors.New("kratos down"))
			},
		},
		{
			name: "owner membership insert fails",
			setupMocks: func(f *fixture) {
				f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(&types.AuthAccount{ID: "auth-42"}, nil)
				f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
		},
		{
			name: "pending membership insert fails",
			setupMocks: func(f *fixture) {
				f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(nil, nil)
				f.expectTx()
				f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
		},
		{
			name: "invitation insert fails",
			setupMocks: func(f *fixture) {
				f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(nil, nil)
				f.expectTx()
				f.memberships.EXPECT().AddMembership(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *types.Membership) (*types.Membership, error) {
						return m, nil
					},
				)
				f.invitations.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
		},
		{
			name: "commit fails",
			setupMocks: func(f *fixture) {
				f.directory.EXPECT().FindIdentityByEmail(gomock.Any(), "dana@x.com").Return(nil, nil)
				f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("commit failed"))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.expectRun("failed")

			f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
			f.clients.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(&types.Client{ID: "client-7", Email: "dana@x.com"}, nil)
			f.orgs.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, o *types.Organization) (*types.Organization, error) {
					return createdOrg(o), nil
				},
			)
			f.authz.EXPECT().LinkOrganizationToPrivileged(gomock.Any(), "org-1").Return(nil)
			f.clients.EXPECT().SetClientOrganization(gomock.Any(), "client-7", "org-1").Return(nil)
			f.security.EXPECT().OrganizationWithoutOwner("org-1", gomock.Any())
			test.setupMocks(f)

			// the organization is not rolled back and no notification is sent
			_, err := f.service().CreateOrganization(context.Background(), danaRequest())

			var persistenceErr *PersistenceError
			if !errors.As(err, &persistenceErr) {
				t.Fatalf("expected PersistenceError, got %v", err)
			}
		})
	}
}

func TestServiceCreateOrganizationStoreFailureBeforeWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.expectRun("failed")

	f.orgs.EXPECT().GetOrganizationByName(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := f.service().CreateOrganization(context.Background(), danaRequest())

	var persistenceErr *PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestServiceGetOrganization(t *testing.T) {
	linked := "auth-42"
	org := &types.Organization{ID: "org-1", Name: "Dana Salon"}

	memberships := []*types.Membership{
		{ID: "m-1", OrgID: "org-1", UserID: &linked, Email: "dana@x.com", Role: types.RoleOwner},
		{ID: "m-2", OrgID: "org-1", Email: "pending@x.com", Role: types.RoleOwner},
		{ID: "m-3", OrgID: "org-1", Email: "late@x.com", Role: types.RoleOwner},
	}
	invitations := []*types.Invitation{
		{ID: "i-2", OrgID: "org-1", Email: "pending@x.com", ExpiresAt: fixedNow.Add(time.Hour)},
		{ID: "i-3", OrgID: "org-1", Email: "late@x.com", ExpiresAt: fixedNow.Add(-time.Hour)},
	}

	tests := []struct {
		name       string
		setupMocks func(*fixture)
		expected   map[string]types.MembershipState
		check      func(*testing.T, error)
	}{
		{
			name: "derives membership states",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(org, nil)
				f.memberships.EXPECT().ListMembershipsByOrganization(gomock.Any(), "org-1").Return(memberships, nil)
				f.invitations.EXPECT().ListInvitationsByOrganization(gomock.Any(), "org-1").Return(invitations, nil)
			},
			expected: map[string]types.MembershipState{
				"m-1": types.MembershipLinked,
				"m-2": types.MembershipPending,
				"m-3": types.MembershipExpired,
			},
		},
		{
			name: "unknown organization",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(nil, storage.ErrNotFound)
			},
			check: func(t *testing.T, err error) {
				var notFoundErr *NotFoundError
				if !errors.As(err, &notFoundErr) {
					t.Fatalf("expected NotFoundError, got %v", err)
				}
			},
		},
		{
			name: "membership listing fails",
			setupMocks: func(f *fixture) {
				f.orgs.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(org, nil)
				f.memberships.EXPECT().ListMembershipsByOrganization(gomock.Any(), "org-1").Return(nil, errors.New("boom"))
			},
			check: func(t *testing.T, err error) {
				var persistenceErr *PersistenceError
				if !errors.As(err, &persistenceErr) {
					t.Fatalf("expected PersistenceError, got %v", err)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.tracer.EXPECT().Start(gomock.Any(), "provisioning.Service.GetOrganization").Return(context.Background(), trace.SpanFromContext(context.Background()))
			test.setupMocks(f)

			details, err := f.service().GetOrganization(context.Background(), "org-1")

			if test.check != nil {
				test.check(t, err)
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, m := range details.Memberships {
				if m.State != test.expected[m.ID] {
					t.Errorf("membership %s: expected %s, got %s", m.ID, test.expected[m.ID], m.State)
				}
			}

			if len(details.Invitations) != 2 || details.Invitations[0].Expired || !details.Invitations[1].Expired {
				t.Errorf("unexpected invitations %+v", details.Invitations)
			}
		})
	}
}

func TestServiceListOrphanedOrganizations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.tracer.EXPECT().Start(gomock.Any(), "provisioning.Service.ListOrphanedOrganizations").Return(context.Background(), trace.SpanFromContext(context.Background()))
	f.orgs.EXPECT().CountOrganizationsWithoutMembers(gomock.Any()).Return(int64(3), nil)
	f.orgs.EXPECT().ListOrganizationsWithoutMembers(gomock.Any(), uint64(2), uint64(2)).Return([]*types.Organization{{ID: "org-3"}}, nil)

	orgs, total, err := f.service().ListOrphanedOrganizations(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total != 3 || len(orgs) != 1 || orgs[0].ID != "org-3" {
		t.Errorf("unexpected result %v %d", orgs, total)
	}
}
