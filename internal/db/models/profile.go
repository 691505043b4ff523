// Package models contains database model definitions.
package models

import "time"

// ProfileStatus is the triage state of a submitted profile.
type ProfileStatus string

// Profile states in the order an admin usually moves through them.
const (
	StatusNew        ProfileStatus = "New"
	StatusContacted  ProfileStatus = "Contacted"
	StatusInterested ProfileStatus = "Interested"
	StatusClosed     ProfileStatus = "Closed"
)

// ProfileStatuses lists every valid status.
var ProfileStatuses = []ProfileStatus{StatusNew, StatusContacted, StatusInterested, StatusClosed}

// Valid reports whether s is one of the known states.
func (s ProfileStatus) Valid() bool {
	for _, known := range ProfileStatuses {
		if s == known {
			return true
		}
	}

	return false
}

// Age bounds accepted for a registration.
const (
	MinAge = 18
	MaxAge = 100
)

// Profile is a matchmaking candidate submitted through the public registration form.
type Profile struct {
	// ID is assigned by the database and never changes.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// UserID optionally links the profile to an externally managed account.
	UserID *string `gorm:"column:user_id;size:255;index" json:"userId"`

	Name      string `gorm:"size:255;not null" json:"name"`
	Gender    string `gorm:"size:50;not null;index" json:"gender"`
	Age       int    `gorm:"not null" json:"age"`
	City      string `gorm:"size:255;not null" json:"city"`
	Community string `gorm:"size:255;not null" json:"community"`
	Phone     string `gorm:"size:50;not null" json:"phone"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Bio       string `gorm:"type:text;not null;default:''" json:"bio"`
	// ImageURL is reserved for the upload endpoint, which is not implemented.
	ImageURL string `gorm:"column:image_url;size:1024;not null;default:''" json:"imageUrl"`

	Status           ProfileStatus `gorm:"size:20;not null;default:'New';index" json:"status"`
	IsPublic         bool          `gorm:"column:is_public;not null;default:false" json:"isPublic"`
	IsFeaturedOnHome bool          `gorm:"column:is_featured_on_home;not null;default:false" json:"isFeaturedOnHome"`
	// AdminNotes is only written by admins.
	AdminNotes string `gorm:"column:admin_notes;type:text;not null;default:''" json:"adminNotes"`

	// CreatedAt is set by gorm on insert and excluded from updates.
	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
}

// TableName sets the table name.
func (Profile) TableName() string {
	return "profiles"
}
