// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/types"
)

var organizationColumns = []string{"id", "name", "email", "phone", "category", "plan", "created_at"}

func scanOrganization(row sq.RowScanner) (*types.Organization, error) {
	var o types.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Category, &o.Plan, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func qualified(alias string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, alias+"."+c)
	}
	return out
}

// CreateOrganization inserts a new organization. A name already taken in any
// casing surfaces as ErrDuplicateKey.
func (s *Storage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganization")
	defer span.End()

	id, err := newID("organization")
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert(organizationsTable).
		Columns("id", "name", "email", "phone", "category", "plan").
		Values(id, o.Name, o.Email, o.Phone, o.Category, o.Plan).
		Suffix(returning(organizationColumns)).
		QueryRowContext(ctx)

	created, err := scanOrganization(row)
	if err != nil {
		return nil, mapError(err, "failed to insert organization")
	}

	return created, nil
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(organizationColumns...).
		From(organizationsTable).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	o, err := scanOrganization(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, mapError(err, "failed to get organization")
	}

	return o, nil
}

// GetOrganizationByName matches the name case-insensitively.
func (s *Storage) GetOrganizationByName(ctx context.Context, name string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByName")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(organizationColumns...).
		From(organizationsTable).
		Where(sq.Expr("LOWER(name) = LOWER(?)", name)).
		QueryRowContext(ctx)

	o, err := scanOrganization(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, mapError(err, "failed to get organization by name")
	}

	return o, nil
}

// ListOrganizationsWithoutMembers returns organizations that have no
// membership row at all, oldest first.
func (s *Storage) ListOrganizationsWithoutMembers(ctx context.Context, offset, limit uint64) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsWithoutMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(qualified("o", organizationColumns)...).
		From(organizationsTable + " o").
		LeftJoin(membershipsTable + " m ON m.org_id = o.id").
		Where(sq.Eq{"m.id": nil}).
		OrderBy("o.created_at ASC").
		Offset(offset).
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list organizations without members")
	}
	defer rows.Close()

	organizations := make([]*types.Organization, 0)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan organization")
		}
		organizations = append(organizations, o)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate organizations")
	}

	return organizations, nil
}

func (s *Storage) CountOrganizationsWithoutMembers(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountOrganizationsWithoutMembers")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From(organizationsTable + " o").
		LeftJoin(membershipsTable + " m ON m.org_id = o.id").
		Where(sq.Eq{"m.id": nil}).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, mapError(err, "failed to count organizations without members")
	}

	return count, nil
}

// ListOrganizationsByUserID returns the organizations the identity is a
// linked member of.
func (s *Storage) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(qualified("o", organizationColumns)...).
		From(organizationsTable + " o").
		Join(membershipsTable + " m ON m.org_id = o.id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("o.name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, mapError(err, "failed to list organizations by user")
	}
	defer rows.Close()

	organizations := make([]*types.Organization, 0)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan organization")
		}
		organizations = append(organizations, o)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate organizations")
	}

	return organizations, nil
}
