// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
)

type SenderInterface interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotifierInterface dispatches notifications without blocking the caller.
type NotifierInterface interface {
	SendWelcomeEmail(ctx context.Context, email, organizationName string)
}
