// Package notify delivers one-time passcodes to a channel the user
// controls. The contract is delivery success or failure only; no retries.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"screenvault/pkg/utils"

	"go.uber.org/zap"
)

// Notifier sends a 6-digit reset code to the given address.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// ==================== SMTP ====================

type smtpNotifier struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewSMTPNotifier(config utils.EmailConfig, log *zap.Logger) Notifier {
	return &smtpNotifier{
		config: config,
		log:    log.With(zap.String("notifier", "smtp")),
	}
}

func (n *smtpNotifier) SendOTP(ctx context.Context, email, code string) error {
	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	auth := smtp.PlainAuth("", n.config.User, n.config.Password, n.config.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your OTP Code\r\n\r\n"+
			"Your OTP code is %s. It will expire in 5 minutes.\r\n",
		n.config.From, email, code,
	))

	if err := smtp.SendMail(addr, auth, n.config.From, []string{email}, msg); err != nil {
		n.log.Error("Failed to send OTP email",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("send OTP to %s: %w", email, err)
	}

	return nil
}

// ==================== LOG (development) ====================

// logNotifier prints the code to the application log instead of delivering
// it. Used when no SMTP host is configured.
type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *logNotifier) SendOTP(ctx context.Context, email, code string) error {
	n.log.Info("OTP generated",
		zap.String("email", email),
		zap.String("otp_code", code),
	)
	return nil
}
