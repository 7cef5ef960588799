// Package validation holds the pure field predicates for the screening form.
// Failures return false; the caller decides the user-visible message.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// IsValidName accepts letters and spaces only, trimmed length 2-50.
func IsValidName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	return nameRegex.MatchString(name)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidPhone accepts E.164-like numbers: optional '+', leading nonzero
// digit, then 1-14 more digits. Country codes are not checked.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// IsValidExperience accepts a number of years in [0, 50].
func IsValidExperience(value string) bool {
	years, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return years >= 0 && years <= 50
}
