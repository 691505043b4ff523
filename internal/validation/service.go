package validation

import (
	"github.com/goccy/go-json"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// ServiceCreate is the body of a new service.
type ServiceCreate struct {
	ID          json.RawMessage `json:"id" validate:"-"`
	Title       string          `json:"title" validate:"notblank"`
	Description string          `json:"description" validate:"notblank"`
	Icon        string          `json:"icon" validate:"notblank"`
}

// DecodeServiceCreate validates a new service body.
func DecodeServiceCreate(body []byte) (*models.Service, error) {
	var in ServiceCreate
	if err := Decode(body, &in); err != nil {
		return nil, err
	}

	return &models.Service{Title: in.Title, Description: in.Description, Icon: in.Icon}, nil
}

// ServiceUpdate is a partial service edit.
type ServiceUpdate struct {
	ID          json.RawMessage `json:"id" validate:"-"`
	Title       *string         `json:"title" validate:"omitnil,notblank"`
	Description *string         `json:"description" validate:"omitnil,notblank"`
	Icon        *string         `json:"icon" validate:"omitnil,notblank"`
}

// DecodeServiceUpdate validates a service edit and returns the column changes.
func DecodeServiceUpdate(body []byte) (map[string]interface{}, error) {
	var in ServiceUpdate
	if err := Decode(body, &in); err != nil {
		return nil, err
	}

	c := map[string]interface{}{}
	setString(c, "title", in.Title)
	setString(c, "description", in.Description)
	setString(c, "icon", in.Icon)

	return c, nil
}
