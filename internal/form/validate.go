package form

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Banner texts for local validation failures.
const (
	MsgRequiredFields  = "Please fill in all required fields"
	MsgInvalidQuantity = "Please enter a valid quantity"
	MsgInvalidPrice    = "Please enter a valid price"
)

// ValidationError carries the warning shown when input is rejected locally.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalidf builds a ValidationError.
func Invalidf(message string, fields ...string) error {
	return &ValidationError{Message: message, Fields: fields}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct checks validator tags on fields. Missing required values map to
// MsgRequiredFields; any other tag failure maps to fallback.
func Struct(fields any, fallback string) error {
	err := instance().Struct(fields)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	names := make([]string, 0, len(verrs))
	required := false
	for _, fe := range verrs {
		names = append(names, fe.Field())
		if fe.Tag() == "required" {
			required = true
		}
	}
	if required {
		return &ValidationError{Message: MsgRequiredFields, Fields: names}
	}
	return &ValidationError{Message: fallback, Fields: names}
}
