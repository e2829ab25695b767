package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/email"
)

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	valid := email.Message{
		SendTo:   "user@example.com",
		Subject:  "Hello",
		BodyHTML: "<p>hi</p>",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(m *email.Message)
	}{
		{"empty recipient", func(m *email.Message) { m.SendTo = "" }},
		{"malformed recipient", func(m *email.Message) { m.SendTo = "not-an-email" }},
		{"missing subject", func(m *email.Message) { m.Subject = "" }},
		{"missing body", func(m *email.Message) { m.BodyHTML = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := valid
			tt.mutate(&msg)
			assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
		})
	}
}

func TestMessageBuilders(t *testing.T) {
	t.Parallel()

	msg := email.VerificationCodeEmail("user@example.com", "ABCD1234")
	assert.NoError(t, msg.Validate())
	assert.Contains(t, msg.BodyHTML, "ABCD1234")
	assert.Equal(t, "email-verification", msg.Tag)

	msg = email.PasswordResetCodeEmail("user@example.com", "WXYZ5678")
	assert.NoError(t, msg.Validate())
	assert.Contains(t, msg.BodyHTML, "WXYZ5678")
	assert.Equal(t, "password-reset", msg.Tag)
}
