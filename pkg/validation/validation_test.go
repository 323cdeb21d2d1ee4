package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `binding:"required,notblank,max=5"`
	Email string  `binding:"required,email"`
	Phone *string `binding:"omitempty,phone_digits"`
	Date  *string `binding:"omitempty,civil_date"`
}

func strPtr(s string) *string { return &s }

func TestStruct_CustomTags(t *testing.T) {
	ok := sample{Name: "Ann", Email: "ann@example.com", Phone: strPtr("(850) 555-0100"), Date: strPtr("2025-07-01")}
	assert.NoError(t, Struct(ok))

	empty := sample{Name: "Ann", Email: "ann@example.com", Phone: strPtr(""), Date: strPtr("")}
	assert.NoError(t, Struct(empty))

	bad := sample{Name: "  ", Email: "nope", Phone: strPtr("555-01"), Date: strPtr("07/01/2025")}
	err := Struct(bad)
	assert.Error(t, err)

	msg := Message(err, map[string]string{"Name": "name", "Phone": "phone number"})
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "phone number must contain at least 10 digits")
	assert.Contains(t, msg, "date must be a date in YYYY-MM-DD format")
}

func TestMessage_MaxLength(t *testing.T) {
	err := Struct(sample{Name: "Annabelle", Email: "ann@example.com"})
	assert.Equal(t, "name must be at most 5 characters", Message(err, map[string]string{"Name": "name"}))
}

func TestMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "Invalid input", Message(assert.AnError, nil))
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 10, CountDigits("+1 (850) 555-010"))
	assert.Equal(t, 0, CountDigits("call me"))
}
