package models

// Service is a marketing offering shown on the public site.
type Service struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	// Icon is a symbolic name the client resolves to a graphic.
	Icon string `gorm:"size:100;not null" json:"icon"`
}

// TableName sets the table name.
func (Service) TableName() string {
	return "services"
}
