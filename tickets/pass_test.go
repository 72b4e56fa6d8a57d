package tickets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := GenerateQRPayload("g1", "t1", "1234567890")

	gigID, ticketID, code, err := VerifyQRPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "g1", gigID)
	assert.Equal(t, "t1", ticketID)
	assert.Equal(t, "1234567890", code)
}

func TestVerifyQRPayloadRejectsTampering(t *testing.T) {
	payload := GenerateQRPayload("g1", "t1", "1234567890")

	tampered := strings.Replace(payload, "t1", "t2", 1)
	_, _, _, err := VerifyQRPayload(tampered)
	assert.Error(t, err)
}

func TestVerifyQRPayloadRejectsBadFormat(t *testing.T) {
	_, _, _, err := VerifyQRPayload("not-a-ticket")
	assert.Error(t, err)

	_, _, _, err = VerifyQRPayload("a|b|c|notatime|sig")
	assert.Error(t, err)
}
