package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"pinboard/internal/config"
)

// MailJob is the unit of work queued for asynchronous delivery.
type MailJob struct {
	To       string `json:"to"`
	Username string `json:"username"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type Mailer struct {
	cfg *config.SMTPConfig
}

func New(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(job MailJob) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp config missing")
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", job.To)
	msg.SetHeader("Subject", job.Subject)
	msg.SetBody("text/plain", job.Body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// VerificationJob builds the registration verification email.
func VerificationJob(username, email, link string) MailJob {
	return MailJob{
		To:       email,
		Username: username,
		Subject:  "Email Verification Link",
		Body: fmt.Sprintf(
			"Hello %s, please verify your email by clicking on this link: %s.\nLink expires in 30 minutes.",
			username, link,
		),
	}
}

// PasswordResetJob builds the password recovery email.
func PasswordResetJob(username, email, link string) MailJob {
	return MailJob{
		To:       email,
		Username: username,
		Subject:  "Password Reset",
		Body:     fmt.Sprintf("Click the link to reset your password: %s", link),
	}
}
