package user

import (
	"errors"
	"fmt"
)

const PasswordMinimumLength = 8

var (
	ErrPasswordTooShort        = fmt.Errorf("password should be at least %d characters", PasswordMinimumLength)
	ErrPasswordNotAlphanumeric = errors.New("password must contain both letters and digits")
)

// CheckPassword enforces the registration password policy.
func CheckPassword(password string) error {
	if len(password) < PasswordMinimumLength {
		return ErrPasswordTooShort
	}
	if !checkAlphanumeric(password) {
		return ErrPasswordNotAlphanumeric
	}
	return nil
}

func checkAlphanumeric(password string) bool {
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			hasLetter = true
		}
		if '0' <= c && c <= '9' {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
