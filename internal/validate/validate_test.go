package validate

import (
	"strings"
	"testing"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErrs int
		wantSub  []string
	}{
		{
			name:     "valid password",
			password: "Str0ng!pass",
			wantErrs: 0,
		},
		{
			name:     "weak password fails every rule but lowercase",
			password: "weak",
			wantErrs: 4,
			wantSub: []string{
				"at least 8 characters",
				"uppercase letter",
				"one number",
				"special character",
			},
		},
		{
			name:     "missing special character only",
			password: "Passw0rdabc",
			wantErrs: 1,
			wantSub:  []string{"special character"},
		},
		{
			name:     "empty password",
			password: "",
			wantErrs: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Password(tt.password)
			if len(errs) != tt.wantErrs {
				t.Fatalf("Password(%q) = %d errors %v, want %d", tt.password, len(errs), errs, tt.wantErrs)
			}
			joined := strings.Join(errs, "; ")
			for _, sub := range tt.wantSub {
				if !strings.Contains(joined, sub) {
					t.Errorf("errors %v missing %q", errs, sub)
				}
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"reader@example.com", true},
		{"a@b.co", true},
		{"not-an-email", false},
		{"has space@example.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		errs := Email(tt.email)
		if (len(errs) == 0) != tt.valid {
			t.Errorf("Email(%q) errors = %v, want valid=%v", tt.email, errs, tt.valid)
		}
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"writer_42", true},
		{"abc", true},
		{"ab", false},
		{strings.Repeat("a", 31), false},
		{"bad-dash", false},
		{"space name", false},
	}

	for _, tt := range tests {
		errs := Username(tt.username)
		if (len(errs) == 0) != tt.valid {
			t.Errorf("Username(%q) errors = %v, want valid=%v", tt.username, errs, tt.valid)
		}
	}
}

func TestName(t *testing.T) {
	if errs := Name("Ada", "First name"); len(errs) != 0 {
		t.Errorf("valid name returned errors: %v", errs)
	}

	errs := Name("A", "First name")
	if len(errs) == 0 {
		t.Fatal("expected error for single-character name")
	}
	if !strings.HasPrefix(errs[0], "First name") {
		t.Errorf("error %q should be labelled with the field name", errs[0])
	}

	if errs := Name("R2D2", "Last name"); len(errs) == 0 {
		t.Error("expected error for name with digits")
	}
}
