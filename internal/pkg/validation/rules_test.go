package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@uni.edu.bd", true},
		{"User.Name+tag@Uni.AC.BD", true},
		{"a@student.edu", true},
		{"", false},
		{"no-at-sign", false},
		{"@missing.local", false},
		{"user@", false},
		{"user@domain", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("user_123"))
	assert.True(t, IsValidUsername("abc"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("Upper"))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername("way_too_long_username_over_thirty_chars"))
}

func TestIsAllowedDomain(t *testing.T) {
	suffixes := []string{".edu.bd", ".ac.bd", ".edu"}

	assert.True(t, IsAllowedDomain("user@uni.edu.bd", suffixes))
	assert.True(t, IsAllowedDomain("user@college.ac.bd", suffixes))
	// suffix match, not a registered-domain parse
	assert.True(t, IsAllowedDomain("a@student.edu", suffixes))
	assert.True(t, IsAllowedDomain("USER@UNI.EDU.BD", suffixes))

	assert.False(t, IsAllowedDomain("user@gmail.com", suffixes))
	assert.False(t, IsAllowedDomain("user@edu.bd.evil.com", suffixes))
}

func TestCheckPassword(t *testing.T) {
	assert.True(t, CheckPassword("password1"))
	assert.True(t, CheckPassword("1234567a"))
	assert.False(t, CheckPassword("short1"))
	assert.False(t, CheckPassword("onlyletters"))
	assert.False(t, CheckPassword("12345678"))
}
