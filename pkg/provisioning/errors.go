// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidationError is returned before any write when the request is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a store or directory failure after validation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// toStatus converts service errors into gRPC status errors for the HTTP layer.
func toStatus(err error) error {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var persistenceErr *PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Message)
	case errors.As(err, &notFoundErr):
		return status.Error(codes.NotFound, notFoundErr.Error())
	case errors.As(err, &persistenceErr):
		return status.Error(codes.Internal, persistenceErr.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func outcome(resp *CreateOrganizationResponse, err error) string {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case err != nil:
		return "failed"
	case resp.Assignment.Duplicate:
		return "duplicate"
	case resp.Assignment.Immediate:
		return "immediate"
	default:
		return "deferred"
	}
}
