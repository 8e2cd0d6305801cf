// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linking

import "strings"

// LoginWebhookRequest accepts both the flat payload and the Kratos identity
// shape sent by after-login and after-registration hooks.
type LoginWebhookRequest struct {
	IdentityID string `json:"identity_id,omitempty"`
	ID         string `json:"id,omitempty"`
	Email      string `json:"email,omitempty"`
	Traits     struct {
		Email string `json:"email,omitempty"`
	} `json:"traits"`
}

func (r *LoginWebhookRequest) AccountID() string {
	if r.IdentityID != "" {
		return strings.TrimSpace(r.IdentityID)
	}
	return strings.TrimSpace(r.ID)
}

func (r *LoginWebhookRequest) AccountEmail() string {
	if r.Email != "" {
		return strings.TrimSpace(r.Email)
	}
	return strings.TrimSpace(r.Traits.Email)
}

type TokenHookResponse struct {
	Session struct {
		IDToken     map[string]interface{} `json:"id_token,omitempty"`
		AccessToken map[string]interface{} `json:"access_token,omitempty"`
	} `json:"session"`
}
