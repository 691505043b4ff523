package validation

import "github.com/goccy/go-json"

// SettingsUpdate is a partial edit of the notification settings.
type SettingsUpdate struct {
	ID             json.RawMessage `json:"id" validate:"-"`
	WhatsappNumber *string         `json:"whatsappNumber"`
	WhatsappAPIKey *string         `json:"whatsappApiKey"`
	SMTPHost       *string         `json:"smtpHost"`
	SMTPPort       *FlexInt        `json:"smtpPort" validate:"omitnil,port"`
	SMTPUser       *string         `json:"smtpUser"`
	SMTPPass       *string         `json:"smtpPass"`
	AdminEmail     *string         `json:"adminEmail" validate:"omitnil,omitempty,email"`
}

// DecodeSettingsUpdate validates a settings edit and returns the column changes.
func DecodeSettingsUpdate(body []byte) (map[string]interface{}, error) {
	var in SettingsUpdate
	if err := Decode(body, &in); err != nil {
		return nil, err
	}

	c := map[string]interface{}{}
	setString(c, "whatsapp_number", in.WhatsappNumber)
	setString(c, "whatsapp_api_key", in.WhatsappAPIKey)
	setString(c, "smtp_host", in.SMTPHost)
	setString(c, "smtp_user", in.SMTPUser)
	setString(c, "smtp_pass", in.SMTPPass)
	setString(c, "admin_email", in.AdminEmail)

	if in.SMTPPort != nil {
		c["smtp_port"] = int(*in.SMTPPort)
	}

	return c, nil
}
