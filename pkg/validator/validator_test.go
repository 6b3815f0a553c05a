package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	ID       uuid.UUID `validate:"uuid_required"`
	Quantity int       `validate:"gte=0"`
	Date     string    `validate:"date"`
}

func TestValidateStruct(t *testing.T) {
	ok := sample{ID: uuid.New(), Quantity: 0, Date: ""}
	assert.Empty(t, ValidateStruct(&ok))

	ok.Date = "2026-10-18"
	assert.Empty(t, ValidateStruct(&ok))

	bad := sample{Quantity: -1, Date: "18-10-2026"}
	errs := ValidateStruct(&bad)
	assert.Len(t, errs, 3)
	assert.Equal(t, "sample.ID", errs[0].FailedField)
	assert.Equal(t, "uuid_required", errs[0].Tag)
	assert.Equal(t, "Validation failed: Field 'sample.ID' failed on tag 'uuid_required'", Message(errs))
}

func TestMessageEmpty(t *testing.T) {
	assert.Equal(t, "", Message(nil))
}
