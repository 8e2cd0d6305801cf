// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"context"
	"net/http"
	"testing"
)

// TestHTTPAuthentication tests that admin endpoints require authentication
func TestHTTPAuthentication(t *testing.T) {
	ctx := context.Background()
	client := NewOrganizationClient(baseURL())

	t.Run("Request Without Auth Should Fail", func(t *testing.T) {
		code, err := client.request(ctx, http.MethodGet, "/api/v0/organizations/orphans", nil, nil, nil)
		if err == nil {
			t.Fatal("expected error when calling without authentication")
		}
		if code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", code)
		}
	})

	t.Run("Request With Valid Auth Should Succeed", func(t *testing.T) {
		if _, err := client.ListOrphanedOrganizations(ctx); err != nil {
			t.Fatalf("expected success with valid auth, got error: %v", err)
		}
	})

	t.Run("Webhook Without API Key Should Fail", func(t *testing.T) {
		code, err := client.request(ctx, http.MethodPost, "/api/v0/webhooks/login", nil, map[string]string{"identity_id": "x", "email": "x@example.com"}, nil)
		if err == nil {
			t.Fatal("expected error when calling webhook without api key")
		}
		if code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", code)
		}
	})
}
