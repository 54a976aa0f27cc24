package services

import (
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 6

var ErrWeakPassword = &InputError{Message: "password must be at least 6 characters long"}

func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(strings.TrimSpace(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
