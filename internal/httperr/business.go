package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError carries the field that failed the business-rule check
// (future purchase date, negative amount, occurrence too far ahead).
type ValidationError struct {
	Field string
	Code  string
}

func (e ValidationError) Error() string {
	return e.Code
}

func ErrValidation(field, code string) error {
	return ValidationError{Field: field, Code: code}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
