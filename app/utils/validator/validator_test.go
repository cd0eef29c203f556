package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/app/utils/validator"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func TestValidator_Validate(t *testing.T) {
	v := validator.New()

	t.Run("valid struct passes", func(t *testing.T) {
		req := registerRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correcthorse",
		}

		assert.NoError(t, v.Validate(req))
	})

	t.Run("invalid struct reports json field names", func(t *testing.T) {
		req := registerRequest{
			Username: "a",
			Email:    "not-an-email",
			Password: "short",
		}

		err := v.Validate(req)
		require.Error(t, err)

		var verr *validator.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "username")
		assert.Contains(t, verr.Errors, "email")
		assert.Contains(t, verr.Errors, "password")
	})
}

func TestHelperValidators(t *testing.T) {
	assert.True(t, validator.IsValidEmail("user@example.com"))
	assert.False(t, validator.IsValidEmail("nope"))

	assert.True(t, validator.IsValidUsername("user_name-1"))
	assert.False(t, validator.IsValidUsername("sp ace"))
	assert.False(t, validator.IsValidUsername("ab"))

	assert.True(t, validator.IsValidUUID("6ba7b810-9dad-41d1-80b4-00c04fd430c8"))
	assert.False(t, validator.IsValidUUID("not-a-uuid"))
}
