// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	from     string

	sendMail sendMailFunc

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	_, span := s.tracer.Start(ctx, "mail.SMTPSender.Send")
	defer span.End()

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := s.sendMail(s.addr, auth, s.from, []string{to}, buildMessage(s.from, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

func NewSMTPSender(host string, port int, username, password, from string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *SMTPSender {
	s := new(SMTPSender)

	s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	s.host = host
	s.username = username
	s.password = password
	s.from = from
	s.sendMail = smtp.SendMail

	s.tracer = tracer
	s.logger = logger

	return s
}

// NoopSender only logs, it is used when no SMTP host is configured.
type NoopSender struct {
	logger logging.LoggerInterface
}

func (s *NoopSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Infof("mail delivery disabled, dropping %q for %s", subject, to)
	return nil
}

func NewNoopSender(logger logging.LoggerInterface) *NoopSender {
	return &NoopSender{logger: logger}
}
