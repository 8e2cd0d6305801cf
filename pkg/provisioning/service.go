// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"time"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/storage"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/internal/types"
)

type Service struct {
	clients     ClientRegistryInterface
	orgs        OrganizationStoreInterface
	memberships MembershipStoreInterface
	invitations InvitationLedgerInterface
	directory   IdentityDirectoryInterface
	tx          TransactorInterface
	authz       AuthzInterface
	notifier    NotifierInterface

	invitationLifetime time.Duration
	now                func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateOrganization provisions an organization and binds its owner, either
// immediately to an existing authentication account or through a pending
// membership plus invitation.
func (s *Service) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*CreateOrganizationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.CreateOrganization")
	defer span.End()

	resp, err := s.createOrganization(ctx, req)

	if mErr := s.monitor.IncrementProvisioningRequests(map[string]string{"outcome": outcome(resp, err)}); mErr != nil {
		s.logger.Debugf("failed to record provisioning outcome: %v", mErr)
	}

	return resp, err
}

func (s *Service) createOrganization(ctx context.Context, req *CreateOrganizationRequest) (*CreateOrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	email := types.NormalizeEmail(client.Email)

	existing, err := s.orgs.GetOrganizationByName(ctx, req.Name)
	switch {
	case err == nil:
		return s.duplicate(ctx, existing, client, email)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, &PersistenceError{Op: "check organization name", Err: err}
	}

	newClient := client.ID == ""
	if newClient {
		client, err = s.clients.CreateClient(ctx, client)
		if err != nil {
			return nil, &PersistenceError{Op: "create client", Err: err}
		}
	}

	phone := req.Phone
	if phone == "" {
		phone = client.Phone
	}

	org, err := s.orgs.CreateOrganization(
		ctx,
		&types.Organization{
			Name:     req.Name,
			Email:    email,
			Phone:    phone,
			Category: req.Category,
			Plan:     req.Plan,
		},
	)
	if errors.Is(err, storage.ErrDuplicateKey) {
		// a concurrent request won the unique index
		existing, gErr := s.orgs.GetOrganizationByName(ctx, req.Name)
		if newClient {
			s.logger.Warnf("client %s was created for organization %q but a concurrent request created it first, the client has no organization", client.ID, req.Name)
		}
		if gErr != nil {
			return nil, &PersistenceError{Op: "load conflicting organization", Err: gErr}
		}
		return s.duplicate(ctx, existing, client, email)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "create organization", Err: err}
	}

	if err := s.authz.LinkOrganizationToPrivileged(ctx, org.ID); err != nil {
		s.logger.Warnf("failed to grant admin group access to organization %s: %v", org.ID, err)
	}

	if newClient {
		if err := s.clients.SetClientOrganization(ctx, client.ID, org.ID); err != nil {
			s.logger.Warnf("organization %s created but client %s back-reference failed: %v", org.ID, client.ID, err)
		}
	}

	assignment, err := s.bindOwner(ctx, org, email, req.InvitedBy)
	if err != nil {
		s.logger.Security().OrganizationWithoutOwner(org.ID, err.Error())
		return nil, err
	}
	assignment.ClientID = client.ID

	s.notifier.SendWelcomeEmail(ctx, email, org.Name)
	s.logger.Security().AdminAction(req.InvitedBy, "create_organization", org.ID)

	return &CreateOrganizationResponse{
		Success:      true,
		Organization: organizationView(org),
		Client:       clientSummary(client),
		Assignment:   assignment,
	}, nil
}

// resolveClient loads an existing client or prepares a new one. New clients
// are only inserted once the organization name is known to be free.
func (s *Service) resolveClient(ctx context.Context, req *CreateOrganizationRequest) (*types.Client, error) {
	if req.NewClient != nil {
		return &types.Client{
			FirstName: req.NewClient.FirstName,
			LastName:  req.NewClient.LastName,
			Email:     req.NewClient.Email,
			Phone:     req.NewClient.Phone,
		}, nil
	}

	client, err := s.clients.GetClientByID(ctx, req.ClientID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{Resource: "client", ID: req.ClientID, Err: err}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load client", Err: err}
	}

	if types.NormalizeEmail(client.Email) == "" {
		return nil, invalid("client %s has no email", client.ID)
	}

	return client, nil
}

// bindOwner writes the owner membership. The user id is only ever taken from
// the identity directory.
func (s *Service) bindOwner(ctx context.Context, org *types.Organization, email, invitedBy string) (*Assignment, error) {
	account, err := s.directory.FindIdentityByEmail(ctx, email)
	if err != nil {
		return nil, &PersistenceError{Op: "look up identity", Err: err}
	}

	now := s.now()

	if account != nil && account.ID != "" {
		m, err := s.memberships.AddMembership(
			ctx,
			&types.Membership{
				OrgID:     org.ID,
				UserID:    &account.ID,
				Email:     email,
				Role:      types.RoleOwner,
				InvitedAt: now,
			},
		)
		if err != nil {
			return nil, &PersistenceError{Op: "add owner membership", Err: err}
		}

		if err := s.authz.AssignOrganizationOwner(ctx, org.ID, account.ID); err != nil {
			s.logger.Warnf("failed to assign owner relation for organization %s: %v", org.ID, err)
		}

		return &Assignment{
			Immediate:    true,
			UserID:       account.ID,
			Email:        email,
			Role:         types.RoleOwner,
			MembershipID: m.ID,
		}, nil
	}

	var (
		membership *types.Membership
		invitation *types.Invitation
	)

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		membership, err = s.memberships.AddMembership(
			ctx,
			&types.Membership{
				OrgID:     org.ID,
				Email:     email,
				Role:      types.RoleOwner,
				InvitedAt: now,
			},
		)
		if err != nil {
			return &PersistenceError{Op: "add pending membership", Err: err}
		}

		invitation, err = s.invitations.CreateInvitation(
			ctx,
			&types.Invitation{
				OrgID:     org.ID,
				Email:     email,
				Role:      types.RoleOwner,
				InvitedBy: invitedBy,
				CreatedAt: now,
				ExpiresAt: now.Add(s.invitationLifetime),
			},
		)
		if err != nil {
			return &PersistenceError{Op: "record invitation", Err: err}
		}

		return nil
	})
	if err != nil {
		var persistenceErr *PersistenceError
		if !errors.As(err, &persistenceErr) {
			err = &PersistenceError{Op: "commit pending membership", Err: err}
		}
		return nil, err
	}

	expiresAt := invitation.ExpiresAt

	return &Assignment{
		Invitation:   true,
		Email:        email,
		Role:         types.RoleOwner,
		MembershipID: membership.ID,
		InvitationID: invitation.ID,
		ExpiresAt:    &expiresAt,
	}, nil
}

// duplicate reports an existing organization without writing anything.
func (s *Service) duplicate(ctx context.Context, org *types.Organization, client *types.Client, email string) (*CreateOrganizationResponse, error) {
	s.logger.Infof("organization %q already exists as %s, skipping creation", org.Name, org.ID)

	assignment := &Assignment{
		ClientID:  client.ID,
		Email:     email,
		Role:      types.RoleOwner,
		Duplicate: true,
		Note:      noteDuplicate,
	}

	m, err := s.memberships.GetMembershipByEmail(ctx, org.ID, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		assignment.Note = noteDuplicateNoOwner
	case err != nil:
		return nil, &PersistenceError{Op: "load existing membership", Err: err}
	default:
		assignment.MembershipID = m.ID
		assignment.Role = m.Role
		if m.Pending() {
			assignment.Invitation = true
		} else {
			assignment.Immediate = true
			assignment.UserID = *m.UserID
		}
	}

	return &CreateOrganizationResponse{
		Success:      true,
		Organization: organizationView(org),
		Client:       clientSummary(client),
		Assignment:   assignment,
	}, nil
}

// GetOrganization returns the organization with each membership's derived state.
func (s *Service) GetOrganization(ctx context.Context, id string) (*OrganizationDetails, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.GetOrganization")
	defer span.End()

	org, err := s.orgs.GetOrganizationByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{Resource: "organization", ID: id, Err: err}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load organization", Err: err}
	}

	memberships, err := s.memberships.ListMembershipsByOrganization(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "list memberships", Err: err}
	}

	invitations, err := s.invitations.ListInvitationsByOrganization(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Op: "list invitations", Err: err}
	}

	now := s.now()
	details := &OrganizationDetails{
		Organization: organizationView(org),
		Memberships:  make([]*Membership, 0, len(memberships)),
		Invitations:  make([]*Invitation, 0, len(invitations)),
	}

	for _, m := range memberships {
		view := &Membership{
			ID:        m.ID,
			Email:     m.Email,
			Role:      m.Role,
			State:     types.StateOf(m, invitations, now),
			InvitedAt: m.InvitedAt,
			LinkedAt:  m.LinkedAt,
		}
		if !m.Pending() {
			view.UserID = *m.UserID
		}
		details.Memberships = append(details.Memberships, view)
	}

	for _, i := range invitations {
		details.Invitations = append(details.Invitations, &Invitation{
			ID:        i.ID,
			Email:     i.Email,
			Role:      i.Role,
			InvitedBy: i.InvitedBy,
			ExpiresAt: i.ExpiresAt,
			Expired:   i.Expired(now),
		})
	}

	return details, nil
}

// ListOrphanedOrganizations pages through organizations that have no membership rows.
func (s *Service) ListOrphanedOrganizations(ctx context.Context, offset, limit uint64) ([]*types.Organization, int64, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.ListOrphanedOrganizations")
	defer span.End()

	total, err := s.orgs.CountOrganizationsWithoutMembers(ctx)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "count orphaned organizations", Err: err}
	}

	orgs, err := s.orgs.ListOrganizationsWithoutMembers(ctx, offset, limit)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "list orphaned organizations", Err: err}
	}

	return orgs, total, nil
}

func NewService(
	clients ClientRegistryInterface,
	orgs OrganizationStoreInterface,
	memberships MembershipStoreInterface,
	invitations InvitationLedgerInterface,
	directory IdentityDirectoryInterface,
	tx TransactorInterface,
	authz AuthzInterface,
	notifier NotifierInterface,
	invitationLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.clients = clients
	s.orgs = orgs
	s.memberships = memberships
	s.invitations = invitations
	s.directory = directory
	s.tx = tx
	s.authz = authz
	s.notifier = notifier

	s.invitationLifetime = invitationLifetime
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
