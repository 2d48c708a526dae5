package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects longer input
const maxPasswordBytes = 72

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	userNameRe = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func isAlphaNumeric(s string) bool {
	return letterRe.MatchString(s) && digitRe.MatchString(s)
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword: 8 to 72 bytes with letters and digits.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		return errors.New("password must be at most 72 bytes")
	}
	if !isAlphaNumeric(password) {
		return errors.New("password must contain letters and numbers")
	}
	return nil
}

func ValidateRegisterInput(userName, email, password string) error {
	userName = strings.TrimSpace(userName)
	if len(userName) < 3 || len(userName) > 50 {
		return errors.New("user_name must be between 3 and 50 characters")
	}
	if !userNameRe.MatchString(userName) {
		return errors.New("user_name may only contain letters, numbers, dot, dash and underscore")
	}
	if !IsValidEmail(email) {
		return errors.New("invalid email format")
	}
	return ValidatePassword(password)
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("identifier is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}
