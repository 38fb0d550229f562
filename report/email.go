package report

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"

	"github.com/moodfeed/tslamood/config"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

// EmailSender delivers a rendered digest over SMTP as a multipart message,
// HTML with a plain text fallback.
type EmailSender struct {
	cfg config.EmailConfig
}

func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// SendDigest mails the report to every configured recipient.
func (s *EmailSender) SendDigest(r *Report) error {
	recipients := s.cfg.RecipientList()
	if len(recipients) == 0 {
		return errors.New("no recipients configured")
	}
	if s.cfg.Sender == "" {
		return errors.New("no sender configured")
	}

	htmlBody, err := r.HTML()
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("TSLA Sentiment Digest: %s (%s)",
		r.Stats.Mood, r.GeneratedAt.Format("Jan 2"))

	msg := buildMessage(s.cfg.Sender, recipients, subject, htmlBody, r.Markdown())

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, s.cfg.Sender, recipients, msg); err != nil {
		return errors.Wrap(err, "failed to send digest email")
	}

	Logger.Log.WithField("recipients", len(recipients)).Info("digest email sent")
	return nil
}

func buildMessage(from string, to []string, subject, htmlBody, plainBody string) []byte {
	const boundary = "tslamood-digest-boundary"

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(plainBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(msg.String())
}
