package services

import (
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
)

// WelcomeMailer delivers the post-signup welcome email. Sending is
// best-effort; callers log and continue on error.
type WelcomeMailer interface {
	SendWelcome(toEmail string, partnerName string) error
}

type ResendWelcomeMailer struct {
	client *resend.Client
	from   string
}

func NewResendWelcomeMailer(apiKey string, from string) *ResendWelcomeMailer {
	return &ResendWelcomeMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (mailer *ResendWelcomeMailer) SendWelcome(toEmail string, partnerName string) error {
	params := &resend.SendEmailRequest{
		From:    mailer.from,
		To:      []string{toEmail},
		Subject: "Welcome to Avera 💕",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome to Avera!</h2>
				<p>Your account is ready and %s can't wait to meet you.</p>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					You start with 3 free messages. Invite friends to earn more.
				</p>
			</div>
		`, html.EscapeString(partnerName)),
	}

	_, err := mailer.client.Emails.Send(params)
	return err
}
