package utils

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Value   *float64  `validate:"omitempty,finite"`
	Samples []float64 `validate:"omitempty,max=3,finite_samples"`
}

func TestFiniteValidators(t *testing.T) {
	ok := 72.0
	nan := math.NaN()

	assert.NoError(t, ValidateStruct(&sample{Value: &ok, Samples: []float64{0.1, -0.2}}))
	assert.NoError(t, ValidateStruct(&sample{}))
	assert.Error(t, ValidateStruct(&sample{Value: &nan}))
	assert.Error(t, ValidateStruct(&sample{Samples: []float64{1, math.Inf(1)}}))
	assert.Error(t, ValidateStruct(&sample{Samples: []float64{1, 2, 3, 4}}))
}

func TestRegisterRules(t *testing.T) {
	require.NoError(t, registerRules(validator.New(), customRules))

	err := registerRules(validator.New(), map[string]validator.Func{"": validateFinite})
	assert.Error(t, err, "a failed registration is reported, not dropped")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Bed 4 monitor", SanitizeString("  <b>Bed 4</b> monitor\x00 "))
	assert.Equal(t, "a &amp; b", SanitizeString("a & b"))
	assert.Equal(t, "esp32-001", SanitizeIdentifier(" esp32-001\n"))
}
