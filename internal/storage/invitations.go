// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/types"
)

var invitationColumns = []string{"id", "org_id", "email", "role", "invited_by", "created_at", "expires_at"}

func scanInvitation(row sq.RowScanner) (*types.Invitation, error) {
	var i types.Invitation
	if err := row.Scan(&i.ID, &i.OrgID, &i.Email, &i.Role, &i.InvitedBy, &i.CreatedAt, &i.ExpiresAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// CreateInvitation appends an invitation. CreatedAt is taken from the caller
// so that ExpiresAt stays consistent with it.
func (s *Storage) CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := newID("invitation")
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert(invitationsTable).
		Columns("id", "org_id", "email", "role", "invited_by", "created_at", "expires_at").
		Values(id, i.OrgID, i.Email, i.Role, i.InvitedBy, i.CreatedAt, i.ExpiresAt).
		Suffix(returning(invitationColumns)).
		QueryRowContext(ctx)

	created, err := scanInvitation(row)
	if err != nil {
		return nil, mapError(err, "failed to insert invitation")
	}

	return created, nil
}

func (s *Storage) ListInvitationsByOrganization(ctx context.Context, orgID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByOrganization")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From(invitationsTable).
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list invitations")
	}
	defer rows.Close()

	invitations := make([]*types.Invitation, 0)
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan invitation")
		}
		invitations = append(invitations, i)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate invitations")
	}

	return invitations, nil
}
