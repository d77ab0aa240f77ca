package utils

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var customRules = map[string]validator.Func{
	"finite":         validateFinite,
	"finite_samples": validateFiniteSamples,
}

func init() {
	validate = validator.New()
	if err := registerRules(validate, customRules); err != nil {
		panic(err)
	}
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// finite rejects NaN and ±Inf on float fields (and pointers to them).
func validateFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
		return true
	}
	f := field.Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateFiniteSamples(fl validator.FieldLevel) bool {
	samples, ok := fl.Field().Interface().([]float64)
	if !ok {
		return false
	}
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}
