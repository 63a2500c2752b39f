package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return Email{}, invariant("email cannot be empty")
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, invariant("email format is invalid")
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string { return e.value }

func (e Email) EqualityComponents() []any {
	return []any{e.value}
}
