package controllers

import "errors"

// ErrNoPermission -> role pemanggil tidak boleh mengakses data ini
var ErrNoPermission = &CustomError{"You do not have permission"}

var (
	errDateRequired = errors.New("date is required (YYYY-MM-DD)")
	errInvalidID    = errors.New("invalid id")
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
