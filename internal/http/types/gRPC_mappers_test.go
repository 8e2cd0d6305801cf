// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	v0Types "github.com/canonical/identity-platform-api/v0/http"
	v0Roles "github.com/canonical/identity-platform-api/v0/roles"
	rpcStatus "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

func TestForwardErrorResponseRewriter(t *testing.T) {
	untouchedResponse := &v0Roles.ListRolesResp{}

	tests := []struct {
		name     string
		response proto.Message
		expected any
	}{
		{
			name:     "Valid grpc status",
			response: &rpcStatus.Status{Code: int32(codes.NotFound), Message: "Resource not found"},
			expected: &v0Types.ErrorResponse{
				Status:  int32(http.StatusNotFound),
				Message: "Resource not found",
			},
		},
		{
			name:     "Invalid response type",
			response: untouchedResponse,
			expected: untouchedResponse,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, _ := ForwardErrorResponseRewriter(context.Background(), test.response)

			if !reflect.DeepEqual(result, test.expected) {
				t.Errorf("expected result: %v, got: %v", test.expected, result)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{name: "invalid argument", err: status.Error(codes.InvalidArgument, "name is required"), expectedStatus: http.StatusBadRequest, expectedMessage: "name is required"},
		{name: "unauthenticated", err: status.Error(codes.Unauthenticated, "missing caller"), expectedStatus: http.StatusUnauthorized, expectedMessage: "missing caller"},
		{name: "permission denied", err: status.Error(codes.PermissionDenied, "not an administrator"), expectedStatus: http.StatusForbidden, expectedMessage: "not an administrator"},
		{name: "not found", err: status.Error(codes.NotFound, "client not found"), expectedStatus: http.StatusNotFound, expectedMessage: "client not found"},
		{name: "plain error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMessage: "boom"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(w, r, test.err)

			if w.Code != test.expectedStatus {
				t.Errorf("expected status %d, got %d", test.expectedStatus, w.Code)
			}

			var body struct {
				Status  int    `json:"status"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if body.Status != test.expectedStatus || body.Message != test.expectedMessage {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}
