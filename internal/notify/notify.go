// Package notify sends the notifications that follow a profile registration.
//
// Every send is best effort: a missing setting skips the channel, a failure is
// logged and counted, and neither stops the remaining sends.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// Channel names used in logs and metrics.
const (
	ChannelAdminMail     = "admin_mail"
	ChannelApplicantMail = "applicant_mail"
	ChannelAlert         = "alert"
)

// Outcome of a single send.
type Outcome string

// Outcomes.
const (
	Sent    Outcome = "sent"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// Message texts.
const (
	AdminSubject     = "New Registration"
	ApplicantSubject = "Welcome to dulha-dulhan.com"
	ApplicantBody    = "Your profile has been created. We will review it soon."
)

// ErrDeliveryFailed is wrapped by Report.Err when at least one channel failed.
var ErrDeliveryFailed = errors.New("notification delivery failed")

var notifications = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Number of notification attempts, differentiated by channel and outcome.",
	},
	[]string{"channel", "outcome"},
)

// Mail is a plain text email.
type Mail struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers mail with the transport described by the settings.
type Mailer interface {
	Send(ctx context.Context, s *models.Settings, m Mail) error
}

// Alerter delivers a short instant message to a phone number.
type Alerter interface {
	Alert(ctx context.Context, s *models.Settings, to, message string) error
}

// Report lists what happened on each channel.
type Report struct {
	AdminMail     Outcome
	ApplicantMail Outcome
	Alert         Outcome
	errs          []error
}

// Err returns nil when no channel failed.
func (r Report) Err() error {
	if len(r.errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrDeliveryFailed, errors.Join(r.errs...))
}

// Dispatcher fans a registration out to the configured channels.
type Dispatcher struct {
	Mailer  Mailer
	Alerter Alerter
}

// NewDispatcher returns a dispatcher sending mail over SMTP and logging alerts.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{Mailer: SMTPMailer{}, Alerter: LogAlerter{}}
}

// OnProfileCreated notifies the admin, welcomes the applicant and raises an alert,
// each only when the settings carry what that channel needs.
func (d *Dispatcher) OnProfileCreated(ctx context.Context, p *models.Profile, s *models.Settings) Report {
	var r Report

	if s == nil {
		s = &models.Settings{}
	}

	r.AdminMail = d.sendMail(ctx, &r, ChannelAdminMail, s, s.AdminEmail, Mail{
		Subject: AdminSubject,
		Body:    fmt.Sprintf("New profile: %s registered.", p.Name),
	})

	r.ApplicantMail = d.sendMail(ctx, &r, ChannelApplicantMail, s, p.Email, Mail{
		Subject: ApplicantSubject,
		Body:    ApplicantBody,
	})

	r.Alert = d.sendAlert(ctx, &r, s, fmt.Sprintf("New profile registration: %s", p.Name))

	return r
}

func (d *Dispatcher) sendMail(ctx context.Context, r *Report, channel string, s *models.Settings, to string, m Mail) Outcome {
	if to == "" || !s.MailConfigured() || d.Mailer == nil {
		return record(channel, Skipped)
	}

	m.From = s.SMTPUser
	m.To = to

	if err := d.Mailer.Send(ctx, s, m); err != nil {
		log.Error().Err(err).Str("channel", channel).Str("to", to).Msg("failed to send mail")
		r.errs = append(r.errs, fmt.Errorf("%s: %w", channel, err))

		return record(channel, Failed)
	}

	log.Info().Str("channel", channel).Str("to", to).Msg("mail sent")

	return record(channel, Sent)
}

func (d *Dispatcher) sendAlert(ctx context.Context, r *Report, s *models.Settings, message string) Outcome {
	if s.WhatsappNumber == "" || d.Alerter == nil {
		return record(ChannelAlert, Skipped)
	}

	if err := d.Alerter.Alert(ctx, s, s.WhatsappNumber, message); err != nil {
		log.Error().Err(err).Str("channel", ChannelAlert).Msg("failed to send alert")
		r.errs = append(r.errs, fmt.Errorf("%s: %w", ChannelAlert, err))

		return record(ChannelAlert, Failed)
	}

	return record(ChannelAlert, Sent)
}

func record(channel string, o Outcome) Outcome {
	notifications.WithLabelValues(channel, string(o)).Inc()

	return o
}
