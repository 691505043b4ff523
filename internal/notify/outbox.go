package notify

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/controller/settings"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
	"github.com/dulha-dulhan/matrimony/internal/outbox"
)

// KindProfileCreated is the outbox event written with every new profile.
const KindProfileCreated = "profile.created"

// Handlers returns the outbox handlers of this package.
// Settings are read again for every event so edits apply to the next delivery.
func Handlers(db *gorm.DB, d *Dispatcher) map[string]outbox.Handler {
	return map[string]outbox.Handler{
		KindProfileCreated: func(ctx context.Context, ev *models.OutboxEvent) error {
			var p models.Profile
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				return fmt.Errorf("failed to decode profile payload: %w", err)
			}

			s, err := settings.Get(db.WithContext(ctx))
			if err != nil {
				return err
			}

			return d.OnProfileCreated(ctx, &p, s).Err()
		},
	}
}
