// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package mail -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mail -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mail -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mail -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestNotifier_SendWelcomeEmail(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries uint
		setupMocks func(*MockSenderInterface, *MockLoggerInterface)
	}{
		{
			name:       "delivered on first attempt",
			maxRetries: 3,
			setupMocks: func(sender *MockSenderInterface, logger *MockLoggerInterface) {
				sender.EXPECT().Send(gomock.Any(), "dana@x.com", "Welcome to Dana Salon", gomock.Any()).Return(nil)
				logger.EXPECT().Debugf(gomock.Any(), "dana@x.com", "Dana Salon")
			},
		},
		{
			name:       "delivered after retries",
			maxRetries: 3,
			setupMocks: func(sender *MockSenderInterface, logger *MockLoggerInterface) {
				gomock.InOrder(
					sender.EXPECT().Send(gomock.Any(), "dana@x.com", gomock.Any(), gomock.Any()).Return(errors.New("421 try later")).Times(2),
					sender.EXPECT().Send(gomock.Any(), "dana@x.com", gomock.Any(), gomock.Any()).Return(nil),
				)
				logger.EXPECT().Debugf(gomock.Any(), "dana@x.com", "Dana Salon")
			},
		},
		{
			name:       "failure is only logged",
			maxRetries: 2,
			setupMocks: func(sender *MockSenderInterface, logger *MockLoggerInterface) {
				sender.EXPECT().Send(gomock.Any(), "dana@x.com", gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(3)
				logger.EXPECT().Errorf(gomock.Any(), "dana@x.com", "Dana Salon", 3, gomock.Any())
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSender := NewMockSenderInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "mail.Notifier.deliver").Return(context.Background(), trace.SpanFromContext(context.Background()))
			test.setupMocks(mockSender, mockLogger)

			n := NewNotifier(mockSender, test.maxRetries, mockTracer, mockMonitor, mockLogger)
			n.backoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

			n.SendWelcomeEmail(context.Background(), "dana@x.com", "Dana Salon")
			n.Wait()
		})
	}
}

func TestNotifier_SendWelcomeEmailOutlivesCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSender := NewMockSenderInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	release := make(chan struct{})

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)
	mockSender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _, _ string) error {
			<-release
			return ctx.Err()
		},
	)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())

	n := NewNotifier(mockSender, 0, mockTracer, mockMonitor, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	n.SendWelcomeEmail(ctx, "dana@x.com", "Dana Salon")
	cancel()
	close(release)

	n.Wait()
}

func TestSMTPSender_Send(t *testing.T) {
	tests := []struct {
		name     string
		username string
		sendErr  error
		withAuth bool
		wantErr  bool
	}{
		{name: "anonymous relay", withAuth: false},
		{name: "authenticated", username: "mailer", withAuth: true},
		{name: "relay error", sendErr: errors.New("550 rejected"), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "mail.SMTPSender.Send").Return(context.Background(), trace.SpanFromContext(context.Background()))

			s := NewSMTPSender("smtp.example.com", 587, test.username, "secret", "no-reply@example.com", mockTracer, mockLogger)

			var gotAddr string
			var gotMsg string
			var gotAuth bool
			s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
				gotAddr = addr
				gotMsg = string(msg)
				gotAuth = a != nil
				return test.sendErr
			}

			err := s.Send(context.Background(), "dana@x.com", "Welcome", "hello")

			if test.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if gotAddr != "smtp.example.com:587" {
				t.Errorf("unexpected address %s", gotAddr)
			}
			if gotAuth != test.withAuth {
				t.Errorf("expected auth %v, got %v", test.withAuth, gotAuth)
			}
			if !strings.Contains(gotMsg, "To: dana@x.com\r\n") || !strings.HasSuffix(gotMsg, "\r\n\r\nhello") {
				t.Errorf("unexpected message %q", gotMsg)
			}
		})
	}
}
