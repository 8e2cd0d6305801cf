// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/internal/types"
)

// IdentityDirectoryInterface is a read-only view over the authentication identities.
type IdentityDirectoryInterface interface {
	FindIdentityByEmail(ctx context.Context, email string) (*types.AuthAccount, error)
	GetIdentity(ctx context.Context, id string) (*types.AuthAccount, error)
}

var _ IdentityDirectoryInterface = (*Client)(nil)

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	conf.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// FindIdentityByEmail looks up the identity owning the email credential.
// A nil account and nil error means no identity matches.
func (c *Client) FindIdentityByEmail(ctx context.Context, email string) (*types.AuthAccount, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.FindIdentityByEmail")
	defer span.End()

	email = types.NormalizeEmail(email)

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	c.reportAvailability(r, err)
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	for i := range ids {
		account := accountFromIdentity(&ids[i])
		// the credential filter may match other identifier kinds, only the email counts
		if account.Email == "" || strings.EqualFold(account.Email, email) {
			account.Email = email
			return account, nil
		}
	}

	return nil, nil
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*types.AuthAccount, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetIdentity")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	c.reportAvailability(r, err)

	// subjects issued through client credentials have no identity
	if r != nil && r.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return accountFromIdentity(identity), nil
}

func (c *Client) reportAvailability(r *http.Response, err error) {
	availability := 1.0
	if err != nil && (r == nil || r.StatusCode >= http.StatusInternalServerError) {
		availability = 0
	}

	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, availability); mErr != nil {
		c.logger.Debugf("failed to set kratos availability metric: %v", mErr)
	}
}

// accountFromIdentity reads the email trait, falling back to the first
// verifiable address.
func accountFromIdentity(identity *ory.Identity) *types.AuthAccount {
	account := &types.AuthAccount{ID: identity.Id}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			account.Email = types.NormalizeEmail(email)
		}
	}

	if account.Email == "" && len(identity.VerifiableAddresses) > 0 {
		account.Email = types.NormalizeEmail(identity.VerifiableAddresses[0].Value)
	}

	return account
}
