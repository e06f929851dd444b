package maestro

import (
	"context"
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// UsersService maps the /users endpoints onto typed calls.
type UsersService struct {
	api *Client
}

func NewUsersService(api *Client) *UsersService {
	return &UsersService{api: api}
}

// Login exchanges credentials for a bearer token. The endpoint consumes
// form-encoded fields, not JSON; that is a backend contract.
func (s *UsersService) Login(ctx context.Context, creds Credentials) (*Token, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	token := &Token{}
	if err := s.api.PostForm(ctx, "/users/login", form, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Register creates an account and returns the created profile.
func (s *UsersService) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	user := &User{}
	if err := s.api.Post(ctx, "/users", payload, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Me fetches the profile of the current identity.
func (s *UsersService) Me(ctx context.Context) (*User, error) {
	user := &User{}
	if err := s.api.Get(ctx, "/users/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update sends a partial profile update and returns the server's
// representation of the updated profile.
func (s *UsersService) Update(ctx context.Context, update ProfileUpdate) (*User, error) {
	user := &User{}
	if err := s.api.Put(ctx, "/users/me", update, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterPayload is the account creation form.
type RegisterPayload struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	FullName string `json:"full_name,omitempty" form:"full_name"`
	Phone    string `json:"phone_number,omitempty" form:"phone_number"`
	Password string `json:"password" form:"password"`
}

// Validate will validate the payload
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&p.FullName, validation.Length(0, 200)),
		validation.Field(&p.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

// ProfileUpdate is a partial profile update; nil fields are left untouched
// server-side.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty" form:"email"`
	Username *string `json:"username,omitempty" form:"username"`
	FullName *string `json:"full_name,omitempty" form:"full_name"`
	Password *string `json:"password,omitempty" form:"password"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate will validate the payload
func (p ProfileUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Length(6, 100), is.Email),
		validation.Field(&p.Username, validation.Length(3, 100)),
		validation.Field(&p.FullName, validation.Length(0, 200)),
		validation.Field(&p.Password, validation.Length(8, 100)),
	)
}

// ValidatePhoneNumber is an ozzo rule accepting E.164 or US-formatted phone
// numbers; empty values pass so the field stays optional.
func ValidatePhoneNumber(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return errors.New("must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}
