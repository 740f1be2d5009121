package enum

import (
	"errors"
	"testing"
)

type color string

const (
	red   color = "red"
	green color = "green"
)

func TestParse(t *testing.T) {
	got, err := Parse("color", "green", red, green)
	if err != nil || got != green {
		t.Fatalf("expected green, got %q err=%v", got, err)
	}

	_, err = Parse("color", "GREEN", red, green)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestScanRejectsUnknownStoredValue(t *testing.T) {
	var c color
	if err := Scan(&c, []byte("red"), "color", red, green); err != nil || c != red {
		t.Fatalf("expected red, got %q err=%v", c, err)
	}

	err := Scan(&c, "purple", "color", red, green)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if c != red {
		t.Fatalf("destination must be untouched on failure, got %q", c)
	}

	if err := Scan(&c, nil, "color", red, green); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for null, got %v", err)
	}
	if err := Scan(&c, 42, "color", red, green); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for int, got %v", err)
	}
}

func TestValueRejectsUnknown(t *testing.T) {
	if _, err := Value(color("blue"), "color", red, green); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	v, err := Value(green, "color", red, green)
	if err != nil || v != "green" {
		t.Fatalf("expected green, got %v err=%v", v, err)
	}
}
