// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/canonical/org-provisioning-service/internal/identity"
	"github.com/canonical/org-provisioning-service/pkg/linking"
)

type apiClient struct {
	endpoint string
	headers  http.Header

	client *http.Client
}

// newAPIClient builds a client for the HTTP API. Admin requests carry the
// bearer token and the impersonated identity when the flags are set.
func newAPIClient(endpoint string) *apiClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	c := new(apiClient)
	c.endpoint = strings.TrimSuffix(endpoint, "/")
	c.headers = make(http.Header)
	c.client = &http.Client{Timeout: 30 * time.Second}

	if accessToken != "" {
		c.headers.Set("Authorization", "Bearer "+accessToken)
	}

	if userID != "" {
		c.headers.Set(identity.HeaderName, userID)
	}

	return c
}

// newWebhookClient builds a client for the webhook endpoints, which
// authenticate with the shared API key instead of a bearer token.
func newWebhookClient(endpoint, apiKey string) *apiClient {
	c := newAPIClient(endpoint)
	c.headers = make(http.Header)
	c.headers.Set(linking.APIKeyHeader, apiKey)

	return c
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	for k, v := range c.headers {
		req.Header[k] = v
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
