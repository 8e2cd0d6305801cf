// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/types"
)

var membershipColumns = []string{"id", "org_id", "user_id", "email", "role", "invited_at", "linked_at"}

func scanMembership(row sq.RowScanner) (*types.Membership, error) {
	var m types.Membership
	if err := row.Scan(&m.ID, &m.OrgID, &m.UserID, &m.Email, &m.Role, &m.InvitedAt, &m.LinkedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMemberships(rows interface {
	Next() bool
	Err() error
	sq.RowScanner
}) ([]*types.Membership, error) {
	memberships := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan membership")
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate memberships")
	}

	return memberships, nil
}

// AddMembership inserts a membership. A nil UserID stores a pending row keyed
// by email; linked_at is set only when a user is bound on insert.
func (s *Storage) AddMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMembership")
	defer span.End()

	id, err := newID("membership")
	if err != nil {
		return nil, err
	}

	var linkedAt any
	if !m.Pending() {
		linkedAt = sq.Expr("NOW()")
	}

	row := s.db.Statement(ctx).
		Insert(membershipsTable).
		Columns("id", "org_id", "user_id", "email", "role", "invited_at", "linked_at").
		Values(id, m.OrgID, m.UserID, m.Email, m.Role, m.InvitedAt, linkedAt).
		Suffix(returning(membershipColumns)).
		QueryRowContext(ctx)

	created, err := scanMembership(row)
	if err != nil {
		return nil, mapError(err, "failed to insert membership")
	}

	return created, nil
}

// GetMembershipByEmail matches the email case-insensitively within one organization.
func (s *Storage) GetMembershipByEmail(ctx context.Context, orgID, email string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembershipByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(membershipColumns...).
		From(membershipsTable).
		Where(sq.Eq{"org_id": orgID}).
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		QueryRowContext(ctx)

	m, err := scanMembership(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, mapError(err, "failed to get membership")
	}

	return m, nil
}

func (s *Storage) ListMembershipsByOrganization(ctx context.Context, orgID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByOrganization")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(membershipColumns...).
		From(membershipsTable).
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("invited_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list memberships")
	}
	defer rows.Close()

	return scanMemberships(rows)
}

// LinkPendingMemberships binds every pending membership whose email matches
// to userID and returns the rows it changed. Rows that already carry a user
// are never touched, so repeating the call is a no-op.
func (s *Storage) LinkPendingMemberships(ctx context.Context, userID, email string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.LinkPendingMemberships")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Update(membershipsTable).
		Set("user_id", userID).
		Set("linked_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": nil}).
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		Suffix(returning(membershipColumns)).
		QueryContext(ctx)
	if err != nil {
		return nil, mapError(err, "failed to link memberships")
	}
	defer rows.Close()

	return scanMemberships(rows)
}
