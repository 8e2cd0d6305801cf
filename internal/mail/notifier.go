// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

const notificationTimeout = 2 * time.Minute

var _ NotifierInterface = (*Notifier)(nil)

// Notifier delivers welcome mails in the background. Delivery outcome never
// reaches the caller, failures are only logged.
type Notifier struct {
	sender     SenderInterface
	maxRetries uint
	backoff    func() backoff.BackOff

	wg sync.WaitGroup

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (n *Notifier) SendWelcomeEmail(ctx context.Context, email, organizationName string) {
	// the request context ends with the response, the mail must outlive it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()

		n.deliver(ctx, email, organizationName)
	}()
}

func (n *Notifier) deliver(ctx context.Context, email, organizationName string) {
	ctx, span := n.tracer.Start(ctx, "mail.Notifier.deliver")
	defer span.End()

	subject := fmt.Sprintf("Welcome to %s", organizationName)
	body := fmt.Sprintf(
		"Hello,\r\n\r\nThe organization %q has been created and you are its owner.\r\nSign in with %s to get started.\r\n",
		organizationName,
		email,
	)

	attempt := 0
	_, err := backoff.Retry(
		ctx,
		func() (struct{}, error) {
			attempt++
			return struct{}{}, n.sender.Send(ctx, email, subject, body)
		},
		backoff.WithBackOff(n.backoff()),
		backoff.WithMaxTries(n.maxRetries+1),
	)

	if err != nil {
		n.logger.Errorf("welcome mail to %s for organization %s failed after %d attempts: %v", email, organizationName, attempt, err)
		return
	}

	n.logger.Debugf("welcome mail sent to %s for organization %s", email, organizationName)
}

// Wait blocks until every dispatched notification has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func NewNotifier(sender SenderInterface, maxRetries uint, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Notifier {
	n := new(Notifier)

	n.sender = sender
	n.maxRetries = maxRetries
	n.backoff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }

	n.tracer = tracer
	n.monitor = monitor
	n.logger = logger

	return n
}
