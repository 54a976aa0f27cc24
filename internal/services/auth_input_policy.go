package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

// NormalizeCredentialsInput validates login input. Any malformed value is
// reported as invalid credentials so callers cannot enumerate accounts.
func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrInvalidCredentials
	}
	return email, password, nil
}

type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	name := strings.TrimSpace(input.Name)
	rawEmail := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)
	if name == "" || rawEmail == "" || password == "" {
		return RegistrationInput{}, invalidInput("name, email and password are required")
	}

	email := NormalizeAuthEmail(rawEmail)
	if email == "" {
		return RegistrationInput{}, invalidInput("email address is not valid")
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return RegistrationInput{}, err
	}
	return RegistrationInput{Name: name, Email: email, Password: password}, nil
}
