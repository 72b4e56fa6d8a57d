package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ngPass!", true},
		{"A1!bcdefg", true},
		{"Sh0rt!", false},          // under 9 characters
		{"alllowercase1!", false},  // no uppercase
		{"NoDigitsHere!", false},   // no digit
		{"NoSpecials123", false},   // no special character
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStrongPassword(tt.password), tt.password)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("sam@example.com"))
	assert.True(t, IsValidEmail("sam.jones+tag@sub.example.co"))
	assert.False(t, IsValidEmail("sam"))
	assert.False(t, IsValidEmail("sam@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"drummer", "backing vocals"}, SplitTags("Drummer, backing vocals"))
	assert.Equal(t, []string{"guitar"}, SplitTags("guitar, GUITAR , guitar"))
	assert.Equal(t, []string{"bass"}, SplitTags(" , bass, ,"))
	assert.Empty(t, SplitTags(""))
}

func TestContainsIgnoreCase(t *testing.T) {
	assert.True(t, ContainsIgnoreCase("Sam Carter", "sam"))
	assert.True(t, ContainsIgnoreCase("sam@example.com", "EXAMPLE"))
	assert.False(t, ContainsIgnoreCase("Sam Carter", "dana"))
	assert.True(t, ContainsIgnoreCase("anything", ""))
}

func TestParseQueryOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/roster?page=3&limit=25&status=accepted&search=sam", nil)
	opts := ParseQueryOptions(r)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, "accepted", opts.Status)
	assert.Equal(t, "sam", opts.Search)

	// absent and malformed values fall back to defaults
	r = httptest.NewRequest("GET", "/api/roster?page=-1&limit=abc", nil)
	opts = ParseQueryOptions(r)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Empty(t, opts.Status)
	assert.Empty(t, opts.Search)
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(12)
	b := GenerateRandomString(12)
	assert.Len(t, a, 12)
	assert.Len(t, b, 12)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(10)
	assert.Len(t, s, 10)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9')
	}
}
