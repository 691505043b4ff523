package notify

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// SMTPMailer sends mail through the SMTP server named in the settings.
// Port 465 uses implicit TLS, other ports upgrade with STARTTLS when offered.
type SMTPMailer struct{}

// Send implements Mailer.
func (SMTPMailer) Send(ctx context.Context, s *models.Settings, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	d := gomail.NewDialer(s.SMTPHost, s.SMTPPort, s.SMTPUser, s.SMTPPass)

	if err := d.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "smtp %s:%d", s.SMTPHost, s.SMTPPort)
	}

	return nil
}
