// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/canonical/org-provisioning-service/internal/types"
	"github.com/canonical/org-provisioning-service/pkg/provisioning"
)

func newOrganizationRequest(name, email string) *provisioning.CreateOrganizationRequest {
	return &provisioning.CreateOrganizationRequest{
		Name:     name,
		Category: "retail",
		Plan:     "basic",
		NewClient: &provisioning.NewClient{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     email,
		},
	}
}

func openDB(t *testing.T) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDeferredOwnerLifecycle covers an owner without an identity: the
// organization gets a pending membership plus invitation, and the first
// login links it.
func TestDeferredOwnerLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := NewOrganizationClient(baseURL())
	suffix := time.Now().UnixNano()
	name := fmt.Sprintf("deferred-org-%d", suffix)
	email := fmt.Sprintf("Owner-%d@Example.com", suffix)
	normalized := strings.ToLower(email)

	var orgID string
	t.Run("Create Organization", func(t *testing.T) {
		resp, code, err := client.CreateOrganization(ctx, newOrganizationRequest(name, email))
		if err != nil {
			t.Fatalf("failed to create organization: %v", err)
		}
		if code != http.StatusCreated {
			t.Errorf("expected status 201, got %d", code)
		}
		if !resp.Success || resp.Assignment == nil {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if !resp.Assignment.Invitation || resp.Assignment.Immediate {
			t.Errorf("expected deferred assignment, got %+v", resp.Assignment)
		}
		if resp.Assignment.Email != normalized {
			t.Errorf("expected normalized email %s, got %s", normalized, resp.Assignment.Email)
		}
		if resp.Assignment.ExpiresAt == nil || time.Until(*resp.Assignment.ExpiresAt) < 29*24*time.Hour {
			t.Errorf("expected invitation to expire in about 30 days, got %v", resp.Assignment.ExpiresAt)
		}
		orgID = resp.Organization.ID
	})

	if orgID == "" {
		t.Fatal("organization was not created")
	}

	t.Run("Client Back Reference", func(t *testing.T) {
		var ref sql.NullString
		err := openDB(t).QueryRowContext(ctx, "SELECT org_id FROM clients WHERE email = $1", normalized).Scan(&ref)
		if err != nil {
			t.Fatalf("failed to read client: %v", err)
		}
		if !ref.Valid || ref.String != orgID {
			t.Errorf("expected client to reference %s, got %v", orgID, ref)
		}
	})

	t.Run("Pending Before Login", func(t *testing.T) {
		details, err := client.GetOrganization(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to get organization: %v", err)
		}
		if len(details.Memberships) != 1 || details.Memberships[0].State != types.MembershipPending {
			t.Fatalf("expected one pending membership, got %+v", details.Memberships)
		}
		if len(details.Invitations) != 1 {
			t.Errorf("expected one invitation, got %d", len(details.Invitations))
		}
	})

	t.Run("Login Links Membership", func(t *testing.T) {
		identityID, err := createIdentity(ctx, normalized)
		if err != nil {
			t.Fatal(err)
		}

		code, err := client.Login(ctx, identityID, email)
		if err != nil {
			t.Fatalf("login webhook failed: %v", err)
		}
		if code != http.StatusNoContent {
			t.Errorf("expected status 204, got %d", code)
		}

		details, err := client.GetOrganization(ctx, orgID)
		if err != nil {
			t.Fatalf("failed to get organization: %v", err)
		}
		if len(details.Memberships) != 1 {
			t.Fatalf("expected one membership, got %d", len(details.Memberships))
		}
		m := details.Memberships[0]
		if m.State != types.MembershipLinked || m.UserID != identityID {
			t.Errorf("expected membership linked to %s, got %+v", identityID, m)
		}
	})
}

// TestImmediateOwnerLifecycle covers an owner who already has an identity.
func TestImmediateOwnerLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := NewOrganizationClient(baseURL())
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("existing-%d@example.com", suffix)

	identityID, err := createIdentity(ctx, email)
	if err != nil {
		t.Fatal(err)
	}

	resp, code, err := client.CreateOrganization(ctx, newOrganizationRequest(fmt.Sprintf("immediate-org-%d", suffix), email))
	if err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}
	if code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", code)
	}
	if !resp.Assignment.Immediate || resp.Assignment.UserID != identityID {
		t.Errorf("expected immediate assignment to %s, got %+v", identityID, resp.Assignment)
	}

	details, err := client.GetOrganization(ctx, resp.Organization.ID)
	if err != nil {
		t.Fatalf("failed to get organization: %v", err)
	}
	if len(details.Invitations) != 0 {
		t.Errorf("expected no invitations, got %d", len(details.Invitations))
	}
}

// TestDuplicateOrganization checks that provisioning the same name twice is idempotent.
func TestDuplicateOrganization(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := NewOrganizationClient(baseURL())
	suffix := time.Now().UnixNano()
	name := fmt.Sprintf("duplicate-org-%d", suffix)

	first, _, err := client.CreateOrganization(ctx, newOrganizationRequest(name, fmt.Sprintf("first-%d@example.com", suffix)))
	if err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	second, code, err := client.CreateOrganization(ctx, newOrganizationRequest(strings.ToUpper(name), fmt.Sprintf("second-%d@example.com", suffix)))
	if err != nil {
		t.Fatalf("duplicate create failed: %v", err)
	}
	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if second.Organization.ID != first.Organization.ID {
		t.Errorf("expected existing organization %s, got %s", first.Organization.ID, second.Organization.ID)
	}
	if !second.Assignment.Duplicate {
		t.Errorf("expected duplicate assignment, got %+v", second.Assignment)
	}

	details, err := client.GetOrganization(ctx, first.Organization.ID)
	if err != nil {
		t.Fatalf("failed to get organization: %v", err)
	}
	if len(details.Memberships) != 1 || len(details.Invitations) != 1 {
		t.Errorf("expected duplicate request to write nothing, got %d memberships and %d invitations", len(details.Memberships), len(details.Invitations))
	}
}

func TestOrganizationValidation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := NewOrganizationClient(baseURL())
	suffix := time.Now().UnixNano()

	tests := []struct {
		name string
		req  *provisioning.CreateOrganizationRequest
	}{
		{
			name: "missing name",
			req:  newOrganizationRequest("", fmt.Sprintf("v1-%d@example.com", suffix)),
		},
		{
			name: "invalid email",
			req:  newOrganizationRequest(fmt.Sprintf("v2-%d", suffix), "not-an-email"),
		},
		{
			name: "both client references",
			req: func() *provisioning.CreateOrganizationRequest {
				r := newOrganizationRequest(fmt.Sprintf("v3-%d", suffix), fmt.Sprintf("v3-%d@example.com", suffix))
				r.ClientID = "0190f6d4-0000-7000-8000-000000000000"
				return r
			}(),
		},
		{
			name: "unknown client",
			req: &provisioning.CreateOrganizationRequest{
				Name:     fmt.Sprintf("v4-%d", suffix),
				Category: "retail",
				Plan:     "basic",
				ClientID: "0190f6d4-0000-7000-8000-000000000000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code, err := client.CreateOrganization(ctx, tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code != http.StatusBadRequest && code != http.StatusNotFound {
				t.Errorf("expected status 400 or 404, got %d", code)
			}
		})
	}
}
