package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInviteBody(t *testing.T) {
	body := InviteBody("https://app.example.com", "The Larks", "tok123")
	assert.Contains(t, body, "The Larks")
	assert.Contains(t, body, "https://app.example.com/roster/invite?token=tok123")
	assert.Contains(t, body, "expires in 7 days")
}

func TestVerificationBody(t *testing.T) {
	body := VerificationBody("https://app.example.com", "tok456")
	assert.Contains(t, body, "https://app.example.com/signup/verify?token=tok456")
}
