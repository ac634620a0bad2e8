// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail delivers verification codes. Production uses SMTP; the
// log mailer serves development setups without an SMTP account.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a verification code to an address.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// SMTPConfig holds SMTP delivery settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail through an authenticated SMTP relay.
type SMTP struct {
	cfg SMTPConfig
}

// NewSMTP creates an SMTP mailer.
func NewSMTP(cfg SMTPConfig) *SMTP {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTP{cfg: cfg}
}

// SendVerificationCode delivers the code in a short plain-text message.
func (m *SMTP) SendVerificationCode(_ context.Context, email, code string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	msg.WriteString("Subject: Verification code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&msg, "Your verification code: %s\r\n", code)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending mail to %s: %w", email, err)
	}
	return nil
}

// LogMailer writes codes to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// SendVerificationCode logs the code instead of delivering it.
func (m *LogMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.logger.Info("verification code issued", "email", email, "code", code)
	return nil
}
