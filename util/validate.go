package util

import (
	"errors"
	"strings"
	"unicode"
)

const passwordSymbols = "!@#$%^&*()_+{}[]:;<>,.?~\\-"

/*
* Password must contain at least one lowercase letter, one uppercase letter,
* one digit and one special character, minimum length 8
 */
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long")
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return errors.New("Password must contain at least one lowercase letter, one uppercase letter, one digit, and one special character")
	}
	return nil
}
