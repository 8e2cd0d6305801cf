// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	ory "github.com/ory/client-go"

	"github.com/canonical/org-provisioning-service/pkg/linking"
	"github.com/canonical/org-provisioning-service/pkg/provisioning"
)

var (
	cachedToken string
	tokenExpiry time.Time
	tokenMutex  sync.RWMutex
)

// getAuthToken returns a JWT token either from environment or by exchanging client credentials.
// Tokens are cached to avoid unnecessary token endpoint requests.
func getAuthToken(ctx context.Context) (string, error) {
	tokenMutex.RLock()
	if cachedToken != "" && time.Now().Before(tokenExpiry) {
		defer tokenMutex.RUnlock()
		return cachedToken, nil
	}
	tokenMutex.RUnlock()

	tokenMutex.Lock()
	defer tokenMutex.Unlock()

	// another goroutine may have refreshed while we waited for the lock
	if cachedToken != "" && time.Now().Before(tokenExpiry) {
		return cachedToken, nil
	}

	if token := os.Getenv("JWT_TOKEN"); token != "" {
		cachedToken = token
		tokenExpiry = time.Now().Add(5 * time.Minute)
		return token, nil
	}

	cID := os.Getenv("CLIENT_ID")
	if cID == "" {
		cID = clientId
	}
	cSecret := os.Getenv("CLIENT_SECRET")
	if cSecret == "" {
		cSecret = clientSecret
	}

	if cID == "" || cSecret == "" {
		return "", fmt.Errorf("no authentication credentials available")
	}

	token, expiresIn, err := getJWTTokenWithExpiry(ctx, cID, cSecret)
	if err != nil {
		return "", err
	}

	// refresh 60 seconds before the actual expiry
	cachedToken = token
	safetyMargin := 60
	if expiresIn > safetyMargin {
		tokenExpiry = time.Now().Add(time.Duration(expiresIn-safetyMargin) * time.Second)
	} else {
		tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}

	return token, nil
}

func baseURL() string {
	if u := os.Getenv("HTTP_BASE_URL"); u != "" {
		return u
	}
	if testEnv != nil {
		return testEnv.BaseURL
	}
	return defaultBaseURL
}

// OrganizationClient drives the organization and webhook endpoints over HTTP.
type OrganizationClient struct {
	baseURL  string
	client   *http.Client
	getToken func(context.Context) (string, error)
}

func NewOrganizationClient(baseURL string) *OrganizationClient {
	return &OrganizationClient{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		getToken: getAuthToken,
	}
}

func (c *OrganizationClient) request(ctx context.Context, method, path string, headers http.Header, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func (c *OrganizationClient) adminHeaders(ctx context.Context) (http.Header, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

func (c *OrganizationClient) CreateOrganization(ctx context.Context, req *provisioning.CreateOrganizationRequest) (*provisioning.CreateOrganizationResponse, int, error) {
	h, err := c.adminHeaders(ctx)
	if err != nil {
		return nil, 0, err
	}

	resp := new(provisioning.CreateOrganizationResponse)
	code, err := c.request(ctx, http.MethodPost, "/api/v0/organizations", h, req, resp)
	return resp, code, err
}

func (c *OrganizationClient) GetOrganization(ctx context.Context, id string) (*provisioning.OrganizationDetails, error) {
	h, err := c.adminHeaders(ctx)
	if err != nil {
		return nil, err
	}

	details := new(provisioning.OrganizationDetails)
	_, err = c.request(ctx, http.MethodGet, "/api/v0/organizations/"+id, h, nil, details)
	return details, err
}

func (c *OrganizationClient) ListOrphanedOrganizations(ctx context.Context) (*provisioning.OrphanedOrganizations, error) {
	h, err := c.adminHeaders(ctx)
	if err != nil {
		return nil, err
	}

	orphans := new(provisioning.OrphanedOrganizations)
	_, err = c.request(ctx, http.MethodGet, "/api/v0/organizations/orphans", h, nil, orphans)
	return orphans, err
}

// Login replays the post-login webhook Kratos sends for an identity.
func (c *OrganizationClient) Login(ctx context.Context, identityID, email string) (int, error) {
	h := make(http.Header)
	h.Set(linking.APIKeyHeader, webhookAPIKey)

	req := new(linking.LoginWebhookRequest)
	req.IdentityID = identityID
	req.Email = email

	return c.request(ctx, http.MethodPost, "/api/v0/webhooks/login", h, req, nil)
}

// createIdentity registers an identity in Kratos so the owner binding finds it.
func createIdentity(ctx context.Context, email string) (string, error) {
	configuration := ory.NewConfiguration()
	configuration.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	apiClient := ory.NewAPIClient(configuration)

	// the password credential makes the email a lookup identifier
	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits:   map[string]interface{}{"email": email},
		Credentials: &ory.IdentityWithCredentials{
			Password: &ory.IdentityWithCredentialsPassword{
				Config: &ory.IdentityWithCredentialsPasswordConfig{
					Password: ory.PtrString("e2e-Passw0rd-" + email),
				},
			},
		},
	}

	identity, _, err := apiClient.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}
