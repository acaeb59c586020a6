package validation

import (
	"errors"
	"testing"

	"foodgram-go/internal/domain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingredientRow struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int   `json:"amount" validate:"gte=1,lte=32767"`
}

type sample struct {
	Name        string          `json:"name" validate:"required,max=8"`
	Slug        string          `json:"slug" validate:"omitempty,slug"`
	Ingredients []ingredientRow `json:"ingredients" validate:"required,min=1,dive"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Struct(sample{
		Name:        "far too long name",
		Slug:        "Not A Slug",
		Ingredients: []ingredientRow{{ID: 1, Amount: 0}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))

	fields := map[string]string{}
	for _, field := range errs.Fields(err) {
		fields[field.Field] = field.Message
	}
	assert.Equal(t, "must be at most 8", fields["name"])
	assert.Contains(t, fields, "slug")
	assert.Equal(t, "must be greater than or equal to 1", fields["ingredients[0].amount"])
}

func TestStructAcceptsValidInput(t *testing.T) {
	v := New()

	err := v.Struct(sample{Name: "soup", Slug: "hot-soup", Ingredients: []ingredientRow{{ID: 1, Amount: 5}}})
	assert.NoError(t, err)
}
