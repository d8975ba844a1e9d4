package model

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "jane"},
		{"john.smith@mail.example.org", "john.smith"},
		{"noatsign", "noatsign"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.email); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
