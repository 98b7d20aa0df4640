package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAdmissionNumber(t *testing.T) {
	assert.NoError(t, ValidateAdmissionNumber("2020310022"))
	assert.Error(t, ValidateAdmissionNumber(""))
	assert.Error(t, ValidateAdmissionNumber("   "))
	assert.Error(t, ValidateAdmissionNumber("20A0310022"))
}

func TestValidatePositionName(t *testing.T) {
	assert.NoError(t, ValidatePositionName("President"))
	assert.Error(t, ValidatePositionName(""))
	assert.Error(t, ValidatePositionName("P"))
}

func TestValidateLengths(t *testing.T) {
	assert.NoError(t, ValidateMinLength("ab", 2, "name"))
	assert.ErrorContains(t, ValidateMinLength("a", 2, "name"), "at least 2")
	assert.ErrorContains(t, ValidateMaxLength("abcd", 3, "name"), "at most 3")
}
