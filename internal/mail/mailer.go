package mail

import (
	"fmt"
	"html"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/sfares/newsroom-be/internal/config"
)

const (
	maxAttempts  = 3
	initialDelay = time.Second
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	client *gomail.Client
	from   string
}

// New creates a Mailer from the SMTP settings in cfg.
func New(cfg *config.Config) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{client: client, from: cfg.MailFrom}, nil
}

// SendWelcome sends the post-registration welcome email.
func (m *Mailer) SendWelcome(to, name string) error {
	return m.send(to, "Welcome to Newsroom", welcomeBody(name))
}

// SendPasswordReset sends a password reset link. The link carries a
// single-use token valid for one hour.
func (m *Mailer) SendPasswordReset(to, name, resetURL string) error {
	return m.send(to, "Reset your password", passwordResetBody(name, resetURL))
}

// The display name is user-controlled, so it is HTML-escaped before it goes
// into a body.

func welcomeBody(name string) string {
	return fmt.Sprintf(
		"<h2>Welcome, %s!</h2>"+
			"<p>Your account has been created. You can now sign in and start reading.</p>",
		html.EscapeString(name),
	)
}

func passwordResetBody(name, resetURL string) string {
	return fmt.Sprintf(
		"<h2>Password Reset</h2>"+
			"<p>Hello %s,</p>"+
			"<p>We received a request to reset your password. The link below is valid for one hour:</p>"+
			`<p><a href="%s">Reset your password</a></p>`+
			"<p>If you did not request this, you can safely ignore this email.</p>",
		html.EscapeString(name), resetURL,
	)
}

// send delivers a message, retrying with a doubling delay on transient
// SMTP failures.
func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	var err error
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = m.client.DialAndSend(msg); err == nil {
			return nil
		}
		if attempt < maxAttempts {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("failed to send email after %d attempts: %w", maxAttempts, err)
}
