package validation

import (
	"github.com/goccy/go-json"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// ProfileCreate is the public registration form.
type ProfileCreate struct {
	// accepted and discarded, the server owns these
	ID         json.RawMessage `json:"id" validate:"-"`
	Status     json.RawMessage `json:"status" validate:"-"`
	CreatedAt  json.RawMessage `json:"createdAt" validate:"-"`
	AdminNotes json.RawMessage `json:"adminNotes" validate:"-"`

	UserID           *string `json:"userId"`
	Name             string  `json:"name" validate:"notblank"`
	Gender           string  `json:"gender" validate:"notblank"`
	Age              FlexInt `json:"age" validate:"required,age"`
	City             string  `json:"city" validate:"notblank"`
	Community        string  `json:"community" validate:"notblank"`
	Phone            string  `json:"phone" validate:"notblank"`
	Email            string  `json:"email" validate:"notblank"`
	Bio              string  `json:"bio"`
	ImageURL         string  `json:"imageUrl"`
	IsPublic         bool    `json:"isPublic"`
	IsFeaturedOnHome bool    `json:"isFeaturedOnHome"`
}

// Profile returns the record to insert. Status is always New.
func (in *ProfileCreate) Profile() *models.Profile {
	return &models.Profile{
		UserID:           in.UserID,
		Name:             in.Name,
		Gender:           in.Gender,
		Age:              int(in.Age),
		City:             in.City,
		Community:        in.Community,
		Phone:            in.Phone,
		Email:            in.Email,
		Bio:              in.Bio,
		ImageURL:         in.ImageURL,
		Status:           models.StatusNew,
		IsPublic:         in.IsPublic,
		IsFeaturedOnHome: in.IsFeaturedOnHome,
	}
}

// DecodeProfileCreate validates a registration body.
func DecodeProfileCreate(body []byte) (*models.Profile, error) {
	var in ProfileCreate
	if err := Decode(body, &in); err != nil {
		return nil, err
	}

	return in.Profile(), nil
}

// ProfileUpdate is an admin edit. Only supplied fields change.
type ProfileUpdate struct {
	ID        json.RawMessage `json:"id" validate:"-"`
	CreatedAt json.RawMessage `json:"createdAt" validate:"-"`

	UserID           *string               `json:"userId"`
	Name             *string               `json:"name" validate:"omitnil,notblank"`
	Gender           *string               `json:"gender" validate:"omitnil,notblank"`
	Age              *FlexInt              `json:"age" validate:"omitnil,age"`
	City             *string               `json:"city" validate:"omitnil,notblank"`
	Community        *string               `json:"community" validate:"omitnil,notblank"`
	Phone            *string               `json:"phone" validate:"omitnil,notblank"`
	Email            *string               `json:"email" validate:"omitnil,notblank"`
	Bio              *string               `json:"bio"`
	ImageURL         *string               `json:"imageUrl"`
	Status           *models.ProfileStatus `json:"status" validate:"omitnil,profile_status"`
	IsPublic         *bool                 `json:"isPublic"`
	IsFeaturedOnHome *bool                 `json:"isFeaturedOnHome"`
	AdminNotes       *string               `json:"adminNotes"`
}

// Changes returns the supplied fields keyed by column name.
func (in *ProfileUpdate) Changes() map[string]interface{} {
	c := map[string]interface{}{}

	if in.UserID != nil {
		c["user_id"] = *in.UserID
	}

	setString(c, "name", in.Name)
	setString(c, "gender", in.Gender)
	setString(c, "city", in.City)
	setString(c, "community", in.Community)
	setString(c, "phone", in.Phone)
	setString(c, "email", in.Email)
	setString(c, "bio", in.Bio)
	setString(c, "image_url", in.ImageURL)
	setString(c, "admin_notes", in.AdminNotes)

	if in.Age != nil {
		c["age"] = int(*in.Age)
	}

	if in.Status != nil {
		c["status"] = string(*in.Status)
	}

	if in.IsPublic != nil {
		c["is_public"] = *in.IsPublic
	}

	if in.IsFeaturedOnHome != nil {
		c["is_featured_on_home"] = *in.IsFeaturedOnHome
	}

	return c
}

// DecodeProfileUpdate validates an edit body and returns the column changes.
func DecodeProfileUpdate(body []byte) (map[string]interface{}, error) {
	var in ProfileUpdate
	if err := Decode(body, &in); err != nil {
		return nil, err
	}

	return in.Changes(), nil
}

func setString(c map[string]interface{}, column string, v *string) {
	if v != nil {
		c[column] = *v
	}
}
