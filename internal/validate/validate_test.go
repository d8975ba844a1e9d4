package validate

import "testing"

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.org",
		"UPPER_case%99@host.co",
	}
	for _, s := range valid {
		if !Email(s) {
			t.Errorf("Email(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing@tld",
		"@no-local.com",
		"no-at-sign.com",
		"user@domain.c",
		"user@domain.com extra",
	}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("Email(%q) = true, want false", s)
		}
	}
}

func TestPasswordStrengthOrder(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
		reason   string
	}{
		{"abc123", false, "Password must be at least 8 characters long"},
		{"alllowercase1", false, "Password must contain at least one uppercase letter"},
		{"ALLUPPER1", false, "Password must contain at least one lowercase letter"},
		{"NoDigitsHere", false, "Password must contain at least one number"},
		{"Valid1Pass", true, "Password is strong"},
	}

	for _, tt := range tests {
		ok, reason := PasswordStrength(tt.password)
		if ok != tt.ok {
			t.Errorf("PasswordStrength(%q) ok = %v, want %v", tt.password, ok, tt.ok)
		}
		if reason != tt.reason {
			t.Errorf("PasswordStrength(%q) reason = %q, want %q", tt.password, reason, tt.reason)
		}
	}
}

func TestPasswordStrengthFirstFailureWins(t *testing.T) {
	// Short AND digit-less AND case-less: only the length reason reports.
	_, reason := PasswordStrength("ab")
	if reason != "Password must be at least 8 characters long" {
		t.Errorf("expected the length check to win, got %q", reason)
	}
}
