package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Username: lowercase letters, digits, underscore, 3-30 chars
	UsernamePattern = `^[a-z0-9_]{3,30}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// IsValidEmail reports whether the address has a plausible email shape.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(email))
}

// IsValidUsername reports whether the username matches UsernamePattern.
func IsValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// IsAllowedDomain reports whether the email ends in one of the allowed
// institutional domain suffixes.
func IsAllowedDomain(email string, allowedSuffixes []string) bool {
	lowered := strings.ToLower(email)
	for _, suffix := range allowedSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}

// CheckPassword validates password strength: minimum length plus at least
// one letter and one digit.
func CheckPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
