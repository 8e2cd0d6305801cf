// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/org-provisioning-service/internal/types"
)

var clientColumns = []string{"id", "first_name", "last_name", "email", "phone", "org_id", "created_at"}

func scanClient(row sq.RowScanner) (*types.Client, error) {
	var c types.Client
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.OrgID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateClient(ctx context.Context, c *types.Client) (*types.Client, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateClient")
	defer span.End()

	id, err := newID("client")
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert(clientsTable).
		Columns("id", "first_name", "last_name", "email", "phone", "org_id").
		Values(id, c.FirstName, c.LastName, c.Email, c.Phone, c.OrgID).
		Suffix(returning(clientColumns)).
		QueryRowContext(ctx)

	created, err := scanClient(row)
	if err != nil {
		return nil, mapError(err, "failed to insert client")
	}

	return created, nil
}

func (s *Storage) GetClientByID(ctx context.Context, id string) (*types.Client, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetClientByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(clientColumns...).
		From(clientsTable).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	c, err := scanClient(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, mapError(err, "failed to get client")
	}

	return c, nil
}

// SetClientOrganization records the organization a client anchored.
func (s *Storage) SetClientOrganization(ctx context.Context, clientID, orgID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetClientOrganization")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(clientsTable).
		Set("org_id", orgID).
		Where(sq.Eq{"id": clientID}).
		ExecContext(ctx)
	if err != nil {
		return mapError(err, "failed to update client organization")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
