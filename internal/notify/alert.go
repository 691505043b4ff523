package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// LogAlerter stands in for a WhatsApp gateway. It only logs the message.
type LogAlerter struct{}

// Alert implements Alerter.
func (LogAlerter) Alert(_ context.Context, s *models.Settings, to, message string) error {
	log.Info().
		Str("to", to).
		Bool("api_key_set", s.WhatsappAPIKey != "").
		Str("message", message).
		Msg("whatsapp alert (simulated)")

	return nil
}
