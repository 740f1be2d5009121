// Package enum holds the strict parsing used by every string enum stored in the database.
// A value outside the declared set is a data-integrity error, never silently defaulted.
package enum

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

var ErrInvalidValue = errors.New("invalid enum value")

// Parse returns value as T when it belongs to allowed.
func Parse[T ~string](kind, value string, allowed ...T) (T, error) {
	for _, candidate := range allowed {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidValue, kind, value)
}

// Scan implements the body of sql.Scanner for string enums.
func Scan[T ~string](dst *T, src any, kind string, allowed ...T) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: %s is null", ErrInvalidValue, kind)
	default:
		return fmt.Errorf("%w: %s has type %T", ErrInvalidValue, kind, src)
	}

	parsed, err := Parse(kind, raw, allowed...)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// Value implements the body of driver.Valuer for string enums.
func Value[T ~string](value T, kind string, allowed ...T) (driver.Value, error) {
	if _, err := Parse(kind, string(value), allowed...); err != nil {
		return nil, err
	}
	return string(value), nil
}
