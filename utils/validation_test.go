package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+212612345678", "212612345678", "+33 6 12 34 56 78", "(212) 612-345-678"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), "phone %q", p)
	}

	invalid := []string{"", "abc", "+212", "0612345678", "+2126123456789012345"}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), "phone %q", p)
	}
}

func TestValidatePlate(t *testing.T) {
	valid := []string{"12345-A-6", "123456-B-78", "AB123CD", " 12345-a-6 "}
	for _, p := range valid {
		assert.True(t, ValidatePlate(p), "plate %q", p)
	}

	invalid := []string{"", "12345-A-6-7", "12 345", "12345_A_6"}
	for _, p := range invalid {
		assert.False(t, ValidatePlate(p), "plate %q", p)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}
