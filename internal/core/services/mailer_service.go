package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/config"

	"github.com/go-resty/resty/v2"
)

// MailerService sends transactional email through the HTTP mail gateway.
// Sends are best-effort unless the caller checks the returned error.
type MailerService struct {
	client  *resty.Client
	cfg     config.MailConfig
	enabled bool
}

// NewMailerService creates a new mailer service
func NewMailerService(cfg config.MailConfig) *MailerService {
	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &MailerService{
		client:  client,
		cfg:     cfg,
		enabled: cfg.GatewayURL != "",
	}
}

// IsEnabled checks if the mail gateway is configured
func (s *MailerService) IsEnabled() bool {
	return s.enabled
}

type mailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (s *MailerService) send(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		log.Printf("Mail gateway not configured, skipping email to %s", to)
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(mailPayload{
			From:    s.cfg.From,
			To:      to,
			Subject: subject,
			Text:    body,
		}).
		Post("/v1/messages")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail gateway returned %d", resp.StatusCode())
	}

	return nil
}

// SendVerificationEmail sends the email verification link to a new account
func (s *MailerService) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	body := fmt.Sprintf(`Hello %s,

Thank you for registering with the Blood Bank System.

Please verify your email address by visiting the link below:

%s

If you did not create this account, you can ignore this message.`, name, verifyURL)

	return s.send(ctx, to, "Verify your email address", body)
}

// SendAdminApprovedEmail notifies an admin that their account was approved
func (s *MailerService) SendAdminApprovedEmail(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(`Hello %s,

Your administrator account has been approved. You can now sign in.`, name)

	return s.send(ctx, to, "Your account has been approved", body)
}

// SendAdminRejectedEmail notifies an admin that their account was rejected
func (s *MailerService) SendAdminRejectedEmail(ctx context.Context, to, name, reason string) error {
	body := fmt.Sprintf(`Hello %s,

Your administrator account request was not approved.

Reason: %s

Contact the blood bank administrator if you believe this is a mistake.`, name, reason)

	return s.send(ctx, to, "Your account request was rejected", body)
}

// SendPasswordResetEmail sends the password reset link
func (s *MailerService) SendPasswordResetEmail(ctx context.Context, to, name, resetURL string) error {
	body := fmt.Sprintf(`Hello %s,

You requested a password reset. Visit the link below to choose a new password:

%s

The link expires in 10 minutes. If you did not request this, ignore this message.`, name, resetURL)

	return s.send(ctx, to, "Password reset request", body)
}

// SendDonorReminderEmail invites an eligible donor to donate again
func (s *MailerService) SendDonorReminderEmail(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(`Hello %s,

It has been a while since your last donation and you are eligible to donate again. Every donation can save up to three lives.

Please visit your nearest donation center.`, name)

	return s.send(ctx, to, "You are eligible to donate again", body)
}
