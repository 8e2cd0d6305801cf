// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// PingerInterface reports whether a dependency is reachable.
type PingerInterface interface {
	Ping(context.Context) error
}
