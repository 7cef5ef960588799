package validation

import (
	"strings"
	"testing"
)

func TestIsValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Jane Doe", true},
		{"Al", true},
		{"  Jane Doe  ", true},
		{"J", false},
		{"", false},
		{"Jane123", false},
		{"Jane-Doe", false},
		{strings.Repeat("a", 50), true},
		{strings.Repeat("a", 51), false},
	}
	for _, c := range cases {
		if got := IsValidName(c.name); got != c.want {
			t.Fatalf("IsValidName(%q)=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@domain.tld", true},
		{"a@b.c", true},
		{"user.name+tag@sub.domain.io", true},
		{"", false},
		{"plainaddress", false},
		{"@domain.tld", false},
		{"user@", false},
		{"user@domain", false},
		{"user@@domain.tld", false},
	}
	for _, c := range cases {
		if got := IsValidEmail(c.email); got != c.want {
			t.Fatalf("IsValidEmail(%q)=%v, want %v", c.email, got, c.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+14155552671", true},
		{"14155552671", true},
		{"+4915112345678", true},
		{"12", true},
		{"0123456789", false}, // leading zero
		{"+0123456789", false},
		{"1", false}, // too short
		{"+123456789012345678", false},
		{"phone", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidPhone(c.phone); got != c.want {
			t.Fatalf("IsValidPhone(%q)=%v, want %v", c.phone, got, c.want)
		}
	}
}

func TestIsValidExperience(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"0", true},
		{"5", true},
		{"2.5", true},
		{"50", true},
		{" 10 ", true},
		{"-1", false},
		{"51", false},
		{"abc", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidExperience(c.value); got != c.want {
			t.Fatalf("IsValidExperience(%q)=%v, want %v", c.value, got, c.want)
		}
	}
}
