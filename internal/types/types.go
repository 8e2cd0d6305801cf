// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

const RoleOwner = "owner"

// Client is a business contact. Its ID never identifies an authentication
// identity and must never be written as a membership user.
type Client struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	OrgID     *string   `db:"org_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (c *Client) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// AuthAccount is an authentication identity. It is only ever read, and its
// ID is the sole value allowed in Membership.UserID.
type AuthAccount struct {
	ID    string
	Email string
}

type Organization struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Category  string    `db:"category"`
	Plan      string    `db:"plan"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership binds an organization to an identity. A nil UserID means the
// membership is pending and Email is the key used to link it later.
type Membership struct {
	ID        string     `db:"id"`
	OrgID     string     `db:"org_id"`
	UserID    *string    `db:"user_id"`
	Email     string     `db:"email"`
	Role      string     `db:"role"`
	InvitedAt time.Time  `db:"invited_at"`
	LinkedAt  *time.Time `db:"linked_at"`
}

func (m *Membership) Pending() bool {
	return m.UserID == nil || *m.UserID == ""
}

// Invitation is an append-only record of an offer to join an organization.
type Invitation struct {
	ID        string    `db:"id"`
	OrgID     string    `db:"org_id"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	InvitedBy string    `db:"invited_by"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

type MembershipState string

const (
	MembershipPending MembershipState = "PENDING"
	MembershipLinked  MembershipState = "LINKED"
	MembershipExpired MembershipState = "EXPIRED"
)

// StateOf derives the lifecycle state of a membership. Expiry is passive:
// a pending membership whose every invitation has expired reads as EXPIRED.
func StateOf(m *Membership, invitations []*Invitation, now time.Time) MembershipState {
	if !m.Pending() {
		return MembershipLinked
	}

	expired := false
	for _, i := range invitations {
		if i.OrgID != m.OrgID || !strings.EqualFold(i.Email, m.Email) {
			continue
		}
		if !i.Expired(now) {
			return MembershipPending
		}
		expired = true
	}

	if expired {
		return MembershipExpired
	}

	return MembershipPending
}

// NormalizeEmail is the single place where the identity matching key is derived.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
