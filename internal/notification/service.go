// Package notification sends claimant-facing emails for the onboarding flow.
package notification

import (
	"context"
	"fmt"
	"net/url"

	"kyb/internal/onboarding"
	"kyb/pkg/logger"
	"kyb/pkg/mailer"
)

// Sender is the outbound mail contract, satisfied by pkg/mailer.
type Sender interface {
	Send(to, subject, body string) error
}

var _ Sender = (*mailer.Mailer)(nil)

// Service composes and sends onboarding emails. All sends are best-effort;
// delivery failures are logged, never propagated to the caller's flow.
type Service struct {
	sender     Sender
	confirmURL string
	logger     logger.Logger
}

// NewService creates a notification Service. confirmURL is the externally
// reachable confirmation endpoint the emailed links point at.
func NewService(sender Sender, confirmURL string, log logger.Logger) *Service {
	return &Service{
		sender:     sender,
		confirmURL: confirmURL,
		logger:     log,
	}
}

// SendConfirmationLink emails a one-time confirmation link. The token rides
// in the link only; it is never logged.
func (s *Service) SendConfirmationLink(ctx context.Context, email, token, tokenType string) {
	link := fmt.Sprintf("%s?token_hash=%s&type=%s",
		s.confirmURL, url.QueryEscape(token), url.QueryEscape(tokenType))

	body := fmt.Sprintf(
		`<p>Welcome to the donation platform.</p>
<p><a href="%s">Confirm your email</a> to continue setting up your organization.</p>
<p>If you did not request this, you can ignore this message.</p>`, link)

	s.send(email, "Confirm your email", body)
}

// SendSubmissionReceived emails a receipt after a successful KYB submission,
// noting any documents that did not make it through.
func (s *Service) SendSubmissionReceived(ctx context.Context, email string, result *onboarding.SubmitResult) {
	body := fmt.Sprintf(
		`<p>Your organization verification details were received.</p>
<p>Our compliance team will review your submission; your dashboard shows the current status.</p>
<p>Documents stored: %d</p>`, result.DocumentsStored)

	if n := len(result.PartialFailures); n > 0 {
		body += fmt.Sprintf(
			`<p>%d document(s) could not be stored. Please re-upload them from your dashboard.</p>`, n)
	}

	s.send(email, "Verification submission received", body)
}

func (s *Service) send(to, subject, body string) {
	if s.sender == nil || to == "" {
		return
	}
	if err := s.sender.Send(to, subject, body); err != nil {
		s.logger.Warn("Email delivery failed", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
		return
	}
	s.logger.Info("Email sent", map[string]interface{}{"subject": subject})
}
