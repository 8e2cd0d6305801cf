// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ory/hydra/v2/oauth2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/org-provisioning-service/internal/kratos"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package linking -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package linking -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package linking -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package linking -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func pendingOwner(orgID, email, userID string) *types.Membership {
	return &types.Membership{ID: "m-" + orgID, OrgID: orgID, UserID: &userID, Email: email, Role: types.RoleOwner}
}

func TestServiceLinkPendingMemberships(t *testing.T) {
	tests := []struct {
		name       string
		accountID  string
		email      string
		setupMocks func(*MockStorageInterface, *MockAuthorizerInterface, *MockSecurityLoggerInterface)
		expected   int
		expectErr  error
	}{
		{
			name:      "links pending owner and mirrors the relation",
			accountID: "acc-1",
			email:     "A@B.com",
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface, sec *MockSecurityLoggerInterface) {
				s.EXPECT().LinkPendingMemberships(gomock.Any(), "acc-1", "a@b.com").Return([]*types.Membership{pendingOwner("org-1", "a@b.com", "acc-1")}, nil)
				sec.EXPECT().AdminAction("acc-1", "link_membership", "org-1")
				a.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "acc-1").Return(nil)
			},
			expected: 1,
		},
		{
			name:      "second call is a no-op",
			accountID: "acc-1",
			email:     "a@b.com",
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface, sec *MockSecurityLoggerInterface) {
				s.EXPECT().LinkPendingMemberships(gomock.Any(), "acc-1", "a@b.com").Return(nil, nil)
			},
			expected: 0,
		},
		{
			name:      "authz failure is not fatal",
			accountID: "acc-1",
			email:     "a@b.com",
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface, sec *MockSecurityLoggerInterface) {
				s.EXPECT().LinkPendingMemberships(gomock.Any(), "acc-1", "a@b.com").Return(
					[]*types.Membership{pendingOwner("org-1", "a@b.com", "acc-1"), pendingOwner("org-2", "a@b.com", "acc-1")},
					nil,
				)
				sec.EXPECT().AdminAction("acc-1", "link_membership", gomock.Any()).Times(2)
				a.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "acc-1").Return(errors.New("fga down"))
				a.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-2", "acc-1").Return(nil)
			},
			expected: 2,
		},
		{
			name:       "missing account id",
			email:      "a@b.com",
			setupMocks: func(*MockStorageInterface, *MockAuthorizerInterface, *MockSecurityLoggerInterface) {},
			expectErr:  ErrInvalidLink,
		},
		{
			name:       "blank email",
			accountID:  "acc-1",
			email:      "  ",
			setupMocks: func(*MockStorageInterface, *MockAuthorizerInterface, *MockSecurityLoggerInterface) {},
			expectErr:  ErrInvalidLink,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockDirectory := NewMockIdentityDirectoryInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "linking.Service.LinkPendingMemberships").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
			test.setupMocks(mockStorage, mockAuthz, mockSecurity)

			s := NewService(mockStorage, mockDirectory, mockAuthz, mockTracer, mockMonitor, mockLogger)

			linked, err := s.LinkPendingMemberships(context.Background(), test.accountID, test.email)

			if test.expectErr != nil {
				if !errors.Is(err, test.expectErr) {
					t.Fatalf("expected error %v, got %v", test.expectErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(linked) != test.expected {
				t.Errorf("expected %d linked memberships, got %d", test.expected, len(linked))
			}
		})
	}
}

func TestServiceHandleTokenHook(t *testing.T) {
	subject := "acc-1"

	tests := []struct {
		name         string
		request      *oauth2.TokenHookRequest
		setupMocks   func(*MockStorageInterface, *MockIdentityDirectoryInterface, *MockAuthorizerInterface, *MockTracingInterface)
		expectErr    bool
		validateResp func(*testing.T, *TokenHookResponse)
	}{
		{
			name:    "links and lists organizations",
			request: &oauth2.TokenHookRequest{Session: oauth2.NewSession(subject)},
			setupMocks: func(s *MockStorageInterface, d *MockIdentityDirectoryInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				d.EXPECT().GetIdentity(gomock.Any(), subject).Return(&types.AuthAccount{ID: subject, Email: "Dana@X.com"}, nil)
				tr.EXPECT().Start(gomock.Any(), "linking.Service.LinkPendingMemberships").Return(context.Background(), trace.SpanFromContext(context.Background()))
				s.EXPECT().LinkPendingMemberships(gomock.Any(), subject, "dana@x.com").Return([]*types.Membership{pendingOwner("org-1", "dana@x.com", subject)}, nil)
				a.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", subject).Return(nil)
				s.EXPECT().ListOrganizationsByUserID(gomock.Any(), subject).Return([]*types.Organization{{ID: "org-1"}, {ID: "org-2"}}, nil)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				ids, ok := resp.Session.IDToken["orgs"].([]string)
				if !ok || len(ids) != 2 || ids[0] != "org-1" {
					t.Errorf("unexpected id token claims %v", resp.Session.IDToken)
				}
				if resp.Session.AccessToken["orgs"] == nil {
					t.Error("expected orgs in access token")
				}
			},
		},
		{
			name:    "subject without identity",
			request: &oauth2.TokenHookRequest{Session: oauth2.NewSession("service-client")},
			setupMocks: func(s *MockStorageInterface, d *MockIdentityDirectoryInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				d.EXPECT().GetIdentity(gomock.Any(), "service-client").Return(nil, nil)
				s.EXPECT().ListOrganizationsByUserID(gomock.Any(), "service-client").Return(nil, nil)
			},
			validateResp: func(t *testing.T, resp *TokenHookResponse) {
				if _, ok := resp.Session.IDToken["orgs"]; ok {
					t.Error("expected no orgs claim without memberships")
				}
			},
		},
		{
			name:       "nil session",
			request:    &oauth2.TokenHookRequest{},
			setupMocks: func(*MockStorageInterface, *MockIdentityDirectoryInterface, *MockAuthorizerInterface, *MockTracingInterface) {},
			expectErr:  true,
		},
		{
			name:       "empty subject",
			request:    &oauth2.TokenHookRequest{Session: oauth2.NewSession("")},
			setupMocks: func(*MockStorageInterface, *MockIdentityDirectoryInterface, *MockAuthorizerInterface, *MockTracingInterface) {},
			expectErr:  true,
		},
		{
			name:    "directory failure",
			request: &oauth2.TokenHookRequest{Session: oauth2.NewSession(subject)},
			setupMocks: func(s *MockStorageInterface, d *MockIdentityDirectoryInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				d.EXPECT().GetIdentity(gomock.Any(), subject).Return(nil, errors.New("kratos down"))
			},
			expectErr: true,
		},
		{
			name:    "listing failure",
			request: &oauth2.TokenHookRequest{Session: oauth2.NewSession(subject)},
			setupMocks: func(s *MockStorageInterface, d *MockIdentityDirectoryInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				d.EXPECT().GetIdentity(gomock.Any(), subject).Return(&types.AuthAccount{ID: subject}, nil)
				s.EXPECT().ListOrganizationsByUserID(gomock.Any(), subject).Return(nil, errors.New("storage error"))
			},
			expectErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockDirectory := NewMockIdentityDirectoryInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "linking.Service.HandleTokenHook").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockSecurity.EXPECT().AdminAction(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			test.setupMocks(mockStorage, mockDirectory, mockAuthz, mockTracer)

			s := NewService(mockStorage, mockDirectory, mockAuthz, mockTracer, mockMonitor, mockLogger)

			resp, err := s.HandleTokenHook(context.Background(), test.request)

			if test.expectErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			test.validateResp(t, resp)
		})
	}
}

func TestServiceHandleTokenHookWithKratosDirectory(t *testing.T) {
	const subject = "3f2c8f0e-6d4a-4c8e-9d1b-5a7e2f1c0b9d"

	tests := []struct {
		name        string
		subject     string
		status      int
		setupMocks  func(*MockStorageInterface, *MockAuthorizerInterface, *MockTracingInterface)
		expectedIDs []string
		expectErr   bool
	}{
		{
			name:    "client credentials subject without identity",
			subject: "service-client",
			status:  http.StatusNotFound,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				s.EXPECT().ListOrganizationsByUserID(gomock.Any(), "service-client").Return(nil, nil)
			},
		},
		{
			name:    "identity links pending ownership",
			subject: subject,
			status:  http.StatusOK,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface, tr *MockTracingInterface) {
				tr.EXPECT().Start(gomock.Any(), "linking.Service.LinkPendingMemberships").Return(context.Background(), trace.SpanFromContext(context.Background()))
				s.EXPECT().LinkPendingMemberships(gomock.Any(), subject, "dana@x.com").Return([]*types.Membership{pendingOwner("org-1", "dana@x.com", subject)}, nil)
				a.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", subject).Return(nil)
				s.EXPECT().ListOrganizationsByUserID(gomock.Any(), subject).Return([]*types.Organization{{ID: "org-1"}}, nil)
			},
			expectedIDs: []string{"org-1"},
		},
		{
			name:       "kratos failure",
			subject:    subject,
			status:     http.StatusInternalServerError,
			setupMocks: func(*MockStorageInterface, *MockAuthorizerInterface, *MockTracingInterface) {},
			expectErr:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(test.status)

				if test.status != http.StatusOK || r.URL.Path != "/admin/identities/"+test.subject {
					_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": map[string]interface{}{"code": test.status}})
					return
				}

				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"id":         test.subject,
					"schema_id":  "default",
					"schema_url": "http://kratos/schemas/default",
					"traits":     map[string]interface{}{"email": "Dana@X.com"},
				})
			}))
			defer server.Close()

			noopLogger := logging.NewNoopLogger()
			directory := kratos.NewClient(
				server.URL,
				tracing.NewNoopTracer(),
				monitoring.NewNoopMonitor("org-provisioning-service", noopLogger),
				noopLogger,
			)

			mockStorage := NewMockStorageInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "linking.Service.HandleTokenHook").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockSecurity.EXPECT().AdminAction(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			test.setupMocks(mockStorage, mockAuthz, mockTracer)

			s := NewService(mockStorage, directory, mockAuthz, mockTracer, mockMonitor, mockLogger)

			resp, err := s.HandleTokenHook(context.Background(), &oauth2.TokenHookRequest{Session: oauth2.NewSession(test.subject)})

			if test.expectErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ids, _ := resp.Session.AccessToken["orgs"].([]string)
			if len(ids) != len(test.expectedIDs) {
				t.Fatalf("expected orgs claim %v, got %v", test.expectedIDs, resp.Session.AccessToken)
			}
			for i := range ids {
				if ids[i] != test.expectedIDs[i] {
					t.Errorf("expected orgs claim %v, got %v", test.expectedIDs, ids)
				}
			}
		})
	}
}
