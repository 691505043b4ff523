package models

// SettingsID is the primary key of the only settings row.
const SettingsID uint64 = 1

// DefaultSMTPPort is used until an admin stores another port.
const DefaultSMTPPort = 587

// Settings holds the notification credentials. Exactly one row exists.
type Settings struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	WhatsappNumber string `gorm:"column:whatsapp_number;size:50;not null;default:''" json:"whatsappNumber"`
	WhatsappAPIKey string `gorm:"column:whatsapp_api_key;size:255;not null;default:''" json:"whatsappApiKey"`
	SMTPHost       string `gorm:"column:smtp_host;size:255;not null;default:''" json:"smtpHost"`
	SMTPPort       int    `gorm:"column:smtp_port;not null;default:587" json:"smtpPort"`
	SMTPUser       string `gorm:"column:smtp_user;size:255;not null;default:''" json:"smtpUser"`
	SMTPPass       string `gorm:"column:smtp_pass;size:255;not null;default:''" json:"smtpPass"`
	AdminEmail     string `gorm:"column:admin_email;size:255;not null;default:''" json:"adminEmail"`
}

// TableName sets the table name.
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the row inserted on first access.
func DefaultSettings() Settings {
	return Settings{ID: SettingsID, SMTPPort: DefaultSMTPPort}
}

// MailConfigured reports whether host, user and password are all present.
func (s *Settings) MailConfigured() bool {
	return s.SMTPHost != "" && s.SMTPUser != "" && s.SMTPPass != ""
}
