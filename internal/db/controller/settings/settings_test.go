package settings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulha-dulhan/matrimony/internal/db/dbtest"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

func TestGet(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		s, err := Get(nil)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, s)
	})

	t.Run("creates defaults once", func(t *testing.T) {
		db := dbtest.New(t)

		first, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, models.SettingsID, first.ID)
		assert.Equal(t, models.DefaultSMTPPort, first.SMTPPort)
		assert.Empty(t, first.SMTPHost)
		assert.Empty(t, first.WhatsappNumber)
		assert.Empty(t, first.AdminEmail)

		second, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		var count int64
		require.NoError(t, db.Model(&models.Settings{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("concurrent first access inserts one row", func(t *testing.T) {
		db := dbtest.New(t)

		var wg sync.WaitGroup

		errs := make(chan error, 8)

		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := Get(db)
				errs <- err
			}()
		}

		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		var count int64
		require.NoError(t, db.Model(&models.Settings{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		_, err := Update(nil, map[string]interface{}{"smtp_host": "x"})
		require.ErrorIs(t, err, ErrDBNil)
	})

	t.Run("updates lazily created row", func(t *testing.T) {
		db := dbtest.New(t)

		s, err := Update(db, map[string]interface{}{
			"smtp_host":       "smtp.example.com",
			"smtp_port":       465,
			"whatsapp_number": "919876543210",
			"id":              99,
		})
		require.NoError(t, err)
		assert.Equal(t, models.SettingsID, s.ID)
		assert.Equal(t, "smtp.example.com", s.SMTPHost)
		assert.Equal(t, 465, s.SMTPPort)
		assert.Equal(t, "919876543210", s.WhatsappNumber)

		loaded, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, s, loaded)
	})

	t.Run("empty string clears a value", func(t *testing.T) {
		db := dbtest.New(t)

		_, err := Update(db, map[string]interface{}{"admin_email": "admin@example.com"})
		require.NoError(t, err)

		s, err := Update(db, map[string]interface{}{"admin_email": ""})
		require.NoError(t, err)
		assert.Empty(t, s.AdminEmail)
	})
}
