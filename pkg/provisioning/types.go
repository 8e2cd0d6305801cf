// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/org-provisioning-service/internal/types"
)

const (
	noteDuplicate        = "duplicate detected: organization already exists, returning its current assignment"
	noteDuplicateNoOwner = "duplicate detected: organization already exists and has no membership for this email"
	noteClientIDDisplay  = "client fields are display only and never identify an authentication account"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type NewClient struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

type CreateOrganizationRequest struct {
	Name      string     `json:"name" validate:"required"`
	Category  string     `json:"category" validate:"required"`
	Plan      string     `json:"plan" validate:"required"`
	Phone     string     `json:"phone,omitempty"`
	ClientID  string     `json:"clientId,omitempty" validate:"required_without=NewClient,excluded_with=NewClient"`
	NewClient *NewClient `json:"newClient,omitempty"`

	// InvitedBy is the operator identity, taken from the authenticated caller.
	InvitedBy string `json:"-"`
}

// Validate trims the request in place and checks it. Exactly one of ClientID
// and NewClient must be set.
func (r *CreateOrganizationRequest) Validate() error {
	if r == nil {
		return invalid("request is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Plan = strings.TrimSpace(r.Plan)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ClientID = strings.TrimSpace(r.ClientID)

	if r.NewClient != nil {
		r.NewClient.FirstName = strings.TrimSpace(r.NewClient.FirstName)
		r.NewClient.LastName = strings.TrimSpace(r.NewClient.LastName)
		r.NewClient.Email = strings.TrimSpace(r.NewClient.Email)
		r.NewClient.Phone = strings.TrimSpace(r.NewClient.Phone)
	}

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("invalid request: %v", err)
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required_without", "excluded_with":
		return invalid("exactly one of clientId or newClient must be provided")
	case "email":
		return invalid("%s must be a valid email address", field)
	default:
		return invalid("%s is required", field)
	}
}

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Category  string    `json:"category"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

func organizationView(o *types.Organization) *Organization {
	return &Organization{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		Category:  o.Category,
		Plan:      o.Plan,
		CreatedAt: o.CreatedAt,
	}
}

// ClientSummary describes the business contact. None of its fields may be
// used as an identity key.
type ClientSummary struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	DisplayOnly bool   `json:"displayOnly"`
	Note        string `json:"note"`
}

func clientSummary(c *types.Client) *ClientSummary {
	return &ClientSummary{
		ID:          c.ID,
		DisplayName: c.DisplayName(),
		Email:       c.Email,
		DisplayOnly: true,
		Note:        noteClientIDDisplay,
	}
}

// Assignment tells how the owner was bound. UserID is always an
// authentication account id and ClientID always a business contact id.
type Assignment struct {
	Immediate    bool       `json:"immediate"`
	Invitation   bool       `json:"invitation"`
	UserID       string     `json:"userId,omitempty"`
	ClientID     string     `json:"clientId,omitempty"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	MembershipID string     `json:"membershipId,omitempty"`
	InvitationID string     `json:"invitationId,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Duplicate    bool       `json:"duplicate"`
	Note         string     `json:"note,omitempty"`
}

type CreateOrganizationResponse struct {
	Success      bool           `json:"success"`
	Organization *Organization  `json:"organization"`
	Client       *ClientSummary `json:"client"`
	Assignment   *Assignment    `json:"assignment"`
}

type Membership struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId,omitempty"`
	Email     string                `json:"email"`
	Role      string                `json:"role"`
	State     types.MembershipState `json:"state"`
	InvitedAt time.Time             `json:"invitedAt"`
	LinkedAt  *time.Time            `json:"linkedAt,omitempty"`
}

type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	InvitedBy string    `json:"invitedBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired"`
}

type OrganizationDetails struct {
	Organization *Organization `json:"organization"`
	Memberships  []*Membership `json:"memberships"`
	Invitations  []*Invitation `json:"invitations"`
}

type OrphanedOrganizations struct {
	Organizations []*Organization `json:"organizations"`
	Total         int64           `json:"total"`
}
