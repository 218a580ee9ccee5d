// Package validate implements the field rules enforced on registration and
// profile updates. Each rule returns an empty string when the value passes
// or a human message keyed under the field name otherwise.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	NameMinLength     = 3
	NameMaxLength     = 50
	PasswordMinLength = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name checks a display name: 3–50 characters after trimming. Lengths are
// counted in characters, not bytes, so multibyte names measure correctly.
func Name(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "Please provide name"
	case utf8.RuneCountInString(name) < NameMinLength:
		return "Minimum name length is 3 characters"
	case utf8.RuneCountInString(name) > NameMaxLength:
		return "Maximum name length is 50 characters"
	}
	return ""
}

// Email checks email syntax.
func Email(email string) string {
	if email == "" {
		return "Please provide email"
	}
	if !emailPattern.MatchString(email) {
		return "Please provide valid email"
	}
	return ""
}

// Password checks password strength: at least 8 characters with one
// uppercase letter, one lowercase letter and one digit.
func Password(password string) string {
	if password == "" {
		return "Please provide password"
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return "Minimum password length is 8 characters"
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "Password must have at least 1 uppercase, 1 lowercase letter and 1 number"
	}
	return ""
}

// Registration validates a full registration payload and returns the
// field→message map, empty when everything passes.
func Registration(name, email, password string) map[string]string {
	errs := make(map[string]string)
	if msg := Name(name); msg != "" {
		errs["name"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Profile validates a profile update payload.
func Profile(name, email string) map[string]string {
	errs := make(map[string]string)
	if msg := Name(name); msg != "" {
		errs["name"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
