package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

const aisha = `{"name":"Aisha","gender":"Female","age":27,"city":"Mumbai","community":"X","phone":"1","email":"a@b.c"}`

func requireValidationError(t *testing.T, err error, field string) *ValidationError {
	t.Helper()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
	assert.Equal(t, field, ve.Field)
	assert.NotEmpty(t, ve.Message)

	return ve
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{in: `27`, want: 27},
		{in: `"27"`, want: 27},
		{in: `" 42 "`, want: 42},
		{in: `-3`, want: -3},
		{in: `"abc"`, wantErr: true},
		{in: `27.5`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexInt

			err := f.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotANumber)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestDecodeProfileCreate(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		p, err := DecodeProfileCreate([]byte(aisha))
		require.NoError(t, err)
		assert.Equal(t, "Aisha", p.Name)
		assert.Equal(t, 27, p.Age)
		assert.Equal(t, models.StatusNew, p.Status)
		assert.False(t, p.IsPublic)
		assert.Zero(t, p.ID)
		assert.Nil(t, p.UserID)
	})

	t.Run("server owned fields are stripped", func(t *testing.T) {
		body := `{"id":7,"status":"Closed","createdAt":"2020-01-01T00:00:00Z","adminNotes":"vip",` +
			`"name":"Aisha","gender":"Female","age":"30","city":"Mumbai","community":"X","phone":"1","email":"a@b.c",` +
			`"userId":"ext-1","bio":"hello","isPublic":true}`

		p, err := DecodeProfileCreate([]byte(body))
		require.NoError(t, err)
		assert.Zero(t, p.ID)
		assert.Equal(t, models.StatusNew, p.Status)
		assert.Empty(t, p.AdminNotes)
		assert.True(t, p.CreatedAt.IsZero())
		assert.Equal(t, 30, p.Age)
		assert.Equal(t, "hello", p.Bio)
		assert.True(t, p.IsPublic)
		require.NotNil(t, p.UserID)
		assert.Equal(t, "ext-1", *p.UserID)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "age too young", body: `{"name":"A","gender":"F","age":17,"city":"C","community":"X","phone":"1","email":"e"}`, field: "age"},
		{name: "age too old", body: `{"name":"A","gender":"F","age":101,"city":"C","community":"X","phone":"1","email":"e"}`, field: "age"},
		{name: "age missing", body: `{"name":"A","gender":"F","city":"C","community":"X","phone":"1","email":"e"}`, field: "age"},
		{name: "age not numeric", body: `{"name":"A","gender":"F","age":"old","city":"C","community":"X","phone":"1","email":"e"}`, field: "age"},
		{name: "name missing", body: `{"gender":"F","age":20,"city":"C","community":"X","phone":"1","email":"e"}`, field: "name"},
		{name: "name blank", body: `{"name":"  ","gender":"F","age":20,"city":"C","community":"X","phone":"1","email":"e"}`, field: "name"},
		{name: "first offending field wins", body: `{"age":20,"phone":"1"}`, field: "name"},
		{name: "email missing", body: `{"name":"A","gender":"F","age":20,"city":"C","community":"X","phone":"1"}`, field: "email"},
		{name: "wrong type", body: `{"name":5,"gender":"F","age":20,"city":"C","community":"X","phone":"1","email":"e"}`, field: "name"},
		{name: "unknown field", body: `{"favouriteColour":"blue","name":"A"}`, field: "favouriteColour"},
		{name: "not an object", body: `[1,2]`, field: ""},
		{name: "empty body", body: ``, field: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeProfileCreate([]byte(tt.body))
			assert.Nil(t, p)
			requireValidationError(t, err, tt.field)
		})
	}

	t.Run("age message names the range", func(t *testing.T) {
		_, err := DecodeProfileCreate([]byte(`{"name":"A","gender":"F","age":101,"city":"C","community":"X","phone":"1","email":"e"}`))
		ve := requireValidationError(t, err, "age")
		assert.Equal(t, "age must be between 18 and 100", ve.Message)
	})
}

func TestDecodeProfileUpdate(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		c, err := DecodeProfileUpdate([]byte(`{"status":"Interested","adminNotes":"Called, positive"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"status":      "Interested",
			"admin_notes": "Called, positive",
		}, c)
	})

	t.Run("explicit false and empty optional strings are kept", func(t *testing.T) {
		c, err := DecodeProfileUpdate([]byte(`{"isPublic":false,"bio":"","age":"45"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"is_public": false,
			"bio":       "",
			"age":       45,
		}, c)
	})

	t.Run("id and createdAt are ignored", func(t *testing.T) {
		c, err := DecodeProfileUpdate([]byte(`{"id":9,"createdAt":"2020-01-01T00:00:00Z","isFeaturedOnHome":true}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"is_featured_on_home": true}, c)
	})

	t.Run("empty object changes nothing", func(t *testing.T) {
		c, err := DecodeProfileUpdate([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, c)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "unknown status", body: `{"status":"Rejected"}`, field: "status"},
		{name: "age out of range", body: `{"age":12}`, field: "age"},
		{name: "blank required column", body: `{"name":""}`, field: "name"},
		{name: "unknown field", body: `{"status":"New","foo":1}`, field: "foo"},
		{name: "wrong type", body: `{"isPublic":"yes"}`, field: "isPublic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfileUpdate([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestDecodeService(t *testing.T) {
	s, err := DecodeServiceCreate([]byte(`{"id":3,"title":"Counselling","description":"Family sessions.","icon":"Users"}`))
	require.NoError(t, err)
	assert.Equal(t, &models.Service{Title: "Counselling", Description: "Family sessions.", Icon: "Users"}, s)

	_, err = DecodeServiceCreate([]byte(`{"title":"Counselling","description":"Family sessions."}`))
	requireValidationError(t, err, "icon")

	c, err := DecodeServiceUpdate([]byte(`{"icon":"Star"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"icon": "Star"}, c)

	_, err = DecodeServiceUpdate([]byte(`{"title":" "}`))
	requireValidationError(t, err, "title")
}

func TestDecodeSettingsUpdate(t *testing.T) {
	c, err := DecodeSettingsUpdate([]byte(`{"id":5,"smtpHost":"smtp.example.com","smtpPort":465,"adminEmail":"admin@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"smtp_host":   "smtp.example.com",
		"smtp_port":   465,
		"admin_email": "admin@example.com",
	}, c)

	c, err = DecodeSettingsUpdate([]byte(`{"adminEmail":"","whatsappNumber":""}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"admin_email": "", "whatsapp_number": ""}, c)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "port zero", body: `{"smtpPort":0}`, field: "smtpPort"},
		{name: "port too large", body: `{"smtpPort":70000}`, field: "smtpPort"},
		{name: "bad email", body: `{"adminEmail":"not-an-email"}`, field: "adminEmail"},
		{name: "unknown field", body: `{"smtpTLS":true}`, field: "smtpTLS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSettingsUpdate([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestDecodeTarget(t *testing.T) {
	var notStruct int

	err := Decode([]byte(`{}`), &notStruct)
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}
