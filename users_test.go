package maestro_test

import (
	"testing"

	maestro "github.com/maestro-marketing/go-maestro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterPayload() maestro.RegisterPayload {
	return maestro.RegisterPayload{
		Email:    "ada@example.com",
		Username: "ada",
		FullName: "Ada Lovelace",
		Phone:    "+14155552671",
		Password: "hunter22!",
	}
}

func TestRegisterPayloadValidates(t *testing.T) {
	require.NoError(t, validRegisterPayload().Validate())
}

func TestRegisterPayloadRejectsBadEmail(t *testing.T) {
	p := validRegisterPayload()
	p.Email = "not-an-email"
	assert.Error(t, p.Validate())
}

func TestRegisterPayloadRequiresPassword(t *testing.T) {
	p := validRegisterPayload()
	p.Password = ""
	assert.Error(t, p.Validate())

	p.Password = "short"
	assert.Error(t, p.Validate(), "passwords shorter than 8 characters are rejected")
}

func TestRegisterPayloadRequiresUsername(t *testing.T) {
	p := validRegisterPayload()
	p.Username = ""
	assert.Error(t, p.Validate())
}

func TestRegisterPayloadPhoneIsOptional(t *testing.T) {
	p := validRegisterPayload()
	p.Phone = ""
	assert.NoError(t, p.Validate())
}

func TestRegisterPayloadRejectsBadPhone(t *testing.T) {
	p := validRegisterPayload()
	p.Phone = "555"
	assert.Error(t, p.Validate())
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, maestro.ValidatePhoneNumber(""))
	assert.NoError(t, maestro.ValidatePhoneNumber("+14155552671"))
	assert.NoError(t, maestro.ValidatePhoneNumber("(415) 555-2671"))
	assert.Error(t, maestro.ValidatePhoneNumber("123"))
	assert.Error(t, maestro.ValidatePhoneNumber("not a phone"))
}

func TestProfileUpdateValidatesSetFields(t *testing.T) {
	email := "ada@example.com"
	require.NoError(t, maestro.ProfileUpdate{Email: &email}.Validate())

	bad := "nope"
	assert.Error(t, maestro.ProfileUpdate{Email: &bad}.Validate())

	short := "pw"
	assert.Error(t, maestro.ProfileUpdate{Password: &short}.Validate())
}

func TestProfileUpdateEmptyIsValid(t *testing.T) {
	assert.NoError(t, maestro.ProfileUpdate{}.Validate())
}
