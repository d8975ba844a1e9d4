// Package validate holds the input checks applied before any account
// mutation: email shape and password strength.
package validate

import (
	"regexp"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email reports whether s looks like a valid email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordStrength checks a candidate password against the strength policy.
// Checks run in a fixed order and the first failure wins, so exactly one
// reason is ever reported.
func PasswordStrength(s string) (bool, string) {
	if len(s) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !containsClass(s, unicode.IsDigit) {
		return false, "Password must contain at least one number"
	}
	if !containsClass(s, unicode.IsUpper) {
		return false, "Password must contain at least one uppercase letter"
	}
	if !containsClass(s, unicode.IsLower) {
		return false, "Password must contain at least one lowercase letter"
	}
	return true, "Password is strong"
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}
