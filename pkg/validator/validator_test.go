package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code  string    `json:"code" validate:"barcode"`
	Email string    `json:"email" validate:"required,email"`
	Owner uuid.UUID `json:"owner_id" validate:"uuid_required"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(&sample{Code: "4006381333931", Email: "a@b.co", Owner: uuid.New()})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldName(t *testing.T) {
	errs := ValidateStruct(&sample{Code: "40A6", Email: "a@b.co", Owner: uuid.New()})
	require.Len(t, errs, 1)
	assert.Equal(t, "code", errs[0].FailedField)
	assert.Equal(t, "barcode", errs[0].Tag)
}

func TestValidate_WrapsSentinel(t *testing.T) {
	err := Validate(&sample{Code: "123", Email: "nope", Owner: uuid.Nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email")
}
