//go:build integration

// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/canonical/org-provisioning-service/internal/db"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/internal/types"
	"github.com/canonical/org-provisioning-service/migrations"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*Storage, db.DBClientInterface, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	connConfig, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)

	migrationDB := stdlib.OpenDB(*connConfig)
	provider, err := goose.NewProvider(goose.DialectPostgres, migrationDB, migrations.EmbedMigrations)
	require.NoError(t, err)
	_, err = provider.Up(ctx)
	require.NoError(t, err)
	require.NoError(t, migrationDB.Close())

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	client, err := db.NewDBClient(db.Config{DSN: dsn, MaxConns: 4, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: time.Minute}, tracer, monitor, logger)
	require.NoError(t, err)

	cleanup := func() {
		client.Close()
		_ = container.Terminate(ctx)
	}

	return NewStorage(client, tracer, monitor, logger), client, cleanup
}

func TestIntegration_ProvisioningTables(t *testing.T) {
	ctx := context.Background()
	s, client, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	var org *types.Organization

	t.Run("organization names are unique in any casing", func(t *testing.T) {
		var err error
		org, err = s.CreateOrganization(ctx, &types.Organization{Name: "Dana Salon", Email: "dana@x.com", Category: "beauty", Plan: "basic"})
		require.NoError(t, err)
		require.NotEmpty(t, org.ID)

		_, err = s.CreateOrganization(ctx, &types.Organization{Name: "DANA SALON", Email: "other@x.com", Category: "beauty", Plan: "basic"})
		require.ErrorIs(t, err, ErrDuplicateKey)

		found, err := s.GetOrganizationByName(ctx, "dana salon")
		require.NoError(t, err)
		require.Equal(t, org.ID, found.ID)
	})

	t.Run("client back reference", func(t *testing.T) {
		c, err := s.CreateClient(ctx, &types.Client{FirstName: "Dana", LastName: "Cohen", Email: "dana@x.com"})
		require.NoError(t, err)
		require.Nil(t, c.OrgID)

		require.NoError(t, s.SetClientOrganization(ctx, c.ID, org.ID))

		c, err = s.GetClientByID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, c.OrgID)
		require.Equal(t, org.ID, *c.OrgID)

		_, err = s.GetClientByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("organization without members is reported", func(t *testing.T) {
		count, err := s.CountOrganizationsWithoutMembers(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)

		orphans, err := s.ListOrganizationsWithoutMembers(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, orphans, 1)
		require.Equal(t, org.ID, orphans[0].ID)
	})

	t.Run("pending membership and invitation share a transaction", func(t *testing.T) {
		now := time.Now().UTC()

		err := client.WithTx(ctx, func(ctx context.Context) error {
			if _, err := s.AddMembership(ctx, &types.Membership{OrgID: org.ID, Email: "dana@x.com", Role: types.RoleOwner, InvitedAt: now}); err != nil {
				return err
			}
			return errors.New("invitation failed")
		})
		require.Error(t, err)

		_, err = s.GetMembershipByEmail(ctx, org.ID, "dana@x.com")
		require.ErrorIs(t, err, ErrNotFound)

		err = client.WithTx(ctx, func(ctx context.Context) error {
			if _, err := s.AddMembership(ctx, &types.Membership{OrgID: org.ID, Email: "dana@x.com", Role: types.RoleOwner, InvitedAt: now}); err != nil {
				return err
			}
			_, err := s.CreateInvitation(ctx, &types.Invitation{
				OrgID:     org.ID,
				Email:     "dana@x.com",
				Role:      types.RoleOwner,
				InvitedBy: "admin-1",
				CreatedAt: now,
				ExpiresAt: now.Add(30 * 24 * time.Hour),
			})
			return err
		})
		require.NoError(t, err)

		m, err := s.GetMembershipByEmail(ctx, org.ID, "DANA@X.COM")
		require.NoError(t, err)
		require.True(t, m.Pending())
		require.Nil(t, m.LinkedAt)

		invitations, err := s.ListInvitationsByOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, invitations, 1)
		require.WithinDuration(t, now.Add(30*24*time.Hour), invitations[0].ExpiresAt, time.Second)

		_, err = s.AddMembership(ctx, &types.Membership{OrgID: org.ID, Email: "Dana@X.com", Role: types.RoleOwner, InvitedAt: now})
		require.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("linking is idempotent", func(t *testing.T) {
		linked, err := s.LinkPendingMemberships(ctx, "acc-1", "Dana@X.com")
		require.NoError(t, err)
		require.Len(t, linked, 1)
		require.NotNil(t, linked[0].UserID)
		require.Equal(t, "acc-1", *linked[0].UserID)
		require.NotNil(t, linked[0].LinkedAt)

		linked, err = s.LinkPendingMemberships(ctx, "acc-1", "dana@x.com")
		require.NoError(t, err)
		require.Empty(t, linked)

		memberships, err := s.ListMembershipsByOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		require.Equal(t, "acc-1", *memberships[0].UserID)

		orgs, err := s.ListOrganizationsByUserID(ctx, "acc-1")
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		require.Equal(t, org.ID, orgs[0].ID)

		count, err := s.CountOrganizationsWithoutMembers(ctx)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("immediate membership is linked on insert", func(t *testing.T) {
		other, err := s.CreateOrganization(ctx, &types.Organization{Name: "Other", Email: "b@x.com", Category: "c", Plan: "p"})
		require.NoError(t, err)

		userID := "auth-42"
		m, err := s.AddMembership(ctx, &types.Membership{OrgID: other.ID, UserID: &userID, Email: "b@x.com", Role: types.RoleOwner, InvitedAt: time.Now()})
		require.NoError(t, err)
		require.False(t, m.Pending())
		require.NotNil(t, m.LinkedAt)

		_, err = s.AddMembership(ctx, &types.Membership{OrgID: "0196a0d2-0000-7000-8000-000000000000", Email: "c@x.com", Role: types.RoleOwner, InvitedAt: time.Now()})
		require.ErrorIs(t, err, ErrForeignKeyViolation)
	})
}
