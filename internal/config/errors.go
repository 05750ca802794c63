package config

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingNotFound indicates no layer holds the setting.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates a setting of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a setting outside its allowed values.
	ErrValidationFailed = errors.New("validation failed")
)

// TypeError is returned when a setting cannot be read as the requested type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func invalid(path string, value any, reason string) error {
	return fmt.Errorf("%w: %s = %v: %s", ErrValidationFailed, path, value, reason)
}
