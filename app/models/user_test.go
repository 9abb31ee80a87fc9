package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("reader@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Equal(t, ROLE_USER, u.Role)
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("not-an-email", "secret123")
	assert.Error(t, err)

	// The raw password is length-checked, not the stored bcrypt hash.
	_, err = CreateUser("reader@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	u, err := CreateUser("reader@example.com", "sixish")
	assert.NoError(t, err)
	assert.True(t, u.CheckPassword("sixish"))
}

func TestSetPasswordRejectsShortPasswords(t *testing.T) {
	u, err := CreateUser("reader@example.com", "secret123")
	assert.NoError(t, err)

	assert.ErrorIs(t, u.SetPassword("tiny"), ErrPasswordTooShort)
	assert.True(t, u.CheckPassword("secret123"))

	assert.NoError(t, u.SetPassword("longenough"))
	assert.True(t, u.CheckPassword("longenough"))
}

func TestResetTokenLifecycle(t *testing.T) {
	u := &User{}
	assert.False(t, u.IsResetTokenValid("anything"))

	assert.NoError(t, u.GenerateResetToken())
	assert.Len(t, u.ResetToken, 32)
	assert.True(t, u.IsResetTokenValid(u.ResetToken))
	assert.False(t, u.IsResetTokenValid("other"))

	expired := time.Now().Add(-3 * time.Hour)
	u.ResetSentAt = &expired
	assert.False(t, u.IsResetTokenValid(u.ResetToken))

	u.ClearResetToken()
	assert.Empty(t, u.ResetToken)
	assert.Nil(t, u.ResetSentAt)
}

func TestIsValidService(t *testing.T) {
	for _, s := range []string{ServiceOpenAI, ServiceIdeogram, ServiceStripe} {
		assert.True(t, IsValidService(s))
	}
	assert.False(t, IsValidService("midjourney"))
}
