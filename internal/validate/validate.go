// Package validate holds the field rules shared by registration and event
// input. Every rule returns an apperr validation error naming the field.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"brightevents-backend/internal/apperr"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72

	// Column sizes of the text fields.
	MaxNameLength = 128
	MaxDateLength = 255
)

var (
	v = validator.New()

	// Letters, digits, spaces and light punctuation.
	plainText = regexp.MustCompile(`^[\p{L}\p{N} _\-'.,]+$`)
	// Usernames are a single token.
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.\-]+$`)
)

// Field pairs a human label with its value.
type Field struct {
	Label string
	Value string
}

// NotEmpty fails on the first field whose trimmed value is empty.
func NotEmpty(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return apperr.Validation(fmt.Sprintf("%s cannot be empty", f.Label))
		}
	}
	return nil
}

// NoSpecialChars rejects values outside letters, digits, spaces and - _ ' . ,
func NoSpecialChars(label, value string) error {
	if !plainText.MatchString(value) {
		return apperr.Validation(fmt.Sprintf("%s cannot have special characters", label))
	}
	return nil
}

// MaxLength rejects values longer than n characters.
func MaxLength(label, value string, n int) error {
	if err := v.Var(value, fmt.Sprintf("max=%d", n)); err != nil {
		return apperr.Validation(fmt.Sprintf("%s cannot be longer than %d characters", label, n))
	}
	return nil
}

// Username rejects names containing spaces or special characters.
func Username(value string) error {
	if !usernameRe.MatchString(value) {
		return apperr.Validation("Username cannot have special characters")
	}
	return nil
}

// Email checks the address format.
func Email(value string) error {
	if err := v.Var(value, "required,email"); err != nil {
		return apperr.Validation("Invalid email address")
	}
	return nil
}

// Password checks length and, when confirm is non-empty, that both match.
func Password(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return apperr.Validation(fmt.Sprintf("Password must be at most %d characters", MaxPasswordLength))
	}
	if confirm != "" && confirm != password {
		return apperr.Validation("Passwords do not match")
	}
	return nil
}
