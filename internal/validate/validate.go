// Package validate holds the stateless field predicates used by the signup
// and profile flows. Each function returns the itemized list of messages that
// goes straight into the error envelope.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`\d`)
	specialRe  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// Password checks minimum length and character-class requirements.
func Password(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if !upperRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !specialRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one special character")
	}

	return errs
}

// Email checks the address shape.
func Email(email string) []string {
	if !emailRe.MatchString(email) {
		return []string{"Please enter a valid email address"}
	}
	return nil
}

// Username checks length and allowed characters.
func Username(username string) []string {
	var errs []string

	if len(username) < 3 {
		errs = append(errs, "Username must be at least 3 characters long")
	}
	if len(username) > 30 {
		errs = append(errs, "Username must be less than 30 characters")
	}
	if !usernameRe.MatchString(username) {
		errs = append(errs, "Username can only contain letters, numbers, and underscores")
	}

	return errs
}

// Name checks a human name field; fieldName labels the messages
// (e.g. "First name").
func Name(name, fieldName string) []string {
	var errs []string

	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, fieldName+" must be at least 2 characters long")
	}
	if len(name) > 50 {
		errs = append(errs, fieldName+" must be less than 50 characters")
	}
	if !nameRe.MatchString(name) {
		errs = append(errs, fieldName+" can only contain letters and spaces")
	}

	return errs
}
