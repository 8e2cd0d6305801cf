// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linking

import (
	"context"
	"errors"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/internal/types"
)

const organizationsClaim = "orgs"

var ErrInvalidLink = errors.New("authentication account id and email are required")

type Service struct {
	storage   StorageInterface
	directory IdentityDirectoryInterface
	authz     AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// LinkPendingMemberships binds every pending membership for email to the
// authentication account. Calling it again is a no-op. Expired invitations
// do not prevent linking.
func (s *Service) LinkPendingMemberships(ctx context.Context, authAccountID, email string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "linking.Service.LinkPendingMemberships")
	defer span.End()

	email = types.NormalizeEmail(email)
	if authAccountID == "" || email == "" {
		return nil, ErrInvalidLink
	}

	linked, err := s.storage.LinkPendingMemberships(ctx, authAccountID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to link memberships: %w", err)
	}

	for _, m := range linked {
		s.logger.Security().AdminAction(authAccountID, "link_membership", m.OrgID)

		if m.Role != types.RoleOwner {
			continue
		}

		if err := s.authz.AssignOrganizationOwner(ctx, m.OrgID, authAccountID); err != nil {
			s.logger.Warnf("failed to assign owner relation for organization %s: %v", m.OrgID, err)
		}
	}

	if len(linked) > 0 {
		s.logger.Infof("linked %d pending memberships to account %s", len(linked), authAccountID)
	}

	return linked, nil
}

// HandleTokenHook links the subject's pending memberships and adds the
// organizations it belongs to as a token claim.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "linking.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil {
		s.logger.Debugf("token hook called without a session")
		return nil, fmt.Errorf("session is required")
	}

	subject := req.Session.GetSubject()
	if subject == "" {
		s.logger.Debugf("token hook called without a subject")
		return nil, fmt.Errorf("session subject is required")
	}

	account, err := s.directory.GetIdentity(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity %s: %w", subject, err)
	}

	if account != nil && account.Email != "" {
		if _, err := s.LinkPendingMemberships(ctx, subject, account.Email); err != nil {
			return nil, err
		}
	} else {
		// client credential subjects have no identity
		s.logger.Debugf("no identity found for subject %s, skipping linking", subject)
	}

	orgs, err := s.storage.ListOrganizationsByUserID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	resp := new(TokenHookResponse)
	resp.Session.IDToken = make(map[string]interface{})
	resp.Session.AccessToken = make(map[string]interface{})

	if len(orgs) > 0 {
		ids := make([]string, 0, len(orgs))
		for _, o := range orgs {
			ids = append(ids, o.ID)
		}

		resp.Session.IDToken[organizationsClaim] = ids
		resp.Session.AccessToken[organizationsClaim] = ids
	}

	return resp, nil
}

func NewService(
	storage StorageInterface,
	directory IdentityDirectoryInterface,
	authz AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.directory = directory
	s.authz = authz

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
