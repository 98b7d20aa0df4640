package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateRequired checks that a field is not blank
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength checks the minimum length of a string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return fmt.Errorf("%s must be at least %d characters long", fieldName, minLength)
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateAdmissionNumber checks the voter identifier entered at the
// admission step: non-blank and digits only, matching the number-pad
// entry the voting stations use.
func ValidateAdmissionNumber(value string) error {
	if err := ValidateRequired(value, "admission number"); err != nil {
		return err
	}
	for _, r := range strings.TrimSpace(value) {
		if !unicode.IsDigit(r) {
			return errors.New("admission number must contain only digits")
		}
	}
	return nil
}

// ValidatePositionName checks an administrator-supplied position name
func ValidatePositionName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 100, "name")
}

// ValidateCandidateName checks an administrator-supplied candidate name
func ValidateCandidateName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 100, "name")
}
