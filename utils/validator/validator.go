package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

// Init initializes the validator singleton (idempotent)
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// FieldErrors flattens a validation error into field -> failed tag
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
