package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

const DateLayout = "2006-01-02"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by services when input fails validation. Handlers turn it into a 400 with field details.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Checker struct {
	errs Errors
}

func (c *Checker) Add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

func (c *Checker) Check(ok bool, field, message string) {
	if !ok {
		c.Add(field, message)
	}
}

func (c *Checker) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
		return false
	}
	return true
}

func (c *Checker) Email(field, value string) {
	if !c.Required(field, value) {
		return
	}
	c.Check(govalidator.IsEmail(value), field, "must be a valid email address")
}

func (c *Checker) OptionalURL(field, value string) {
	if value == "" {
		return
	}
	c.Check(govalidator.IsURL(value), field, "must be a valid url")
}

func (c *Checker) Date(field, value string) {
	if !c.Required(field, value) {
		return
	}
	c.Check(govalidator.IsTime(value, DateLayout), field, "must be a date in YYYY-MM-DD format")
}

func (c *Checker) OptionalDate(field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	c.Date(field, *value)
}

func (c *Checker) IntRange(field string, value, min, max int) {
	c.Check(govalidator.InRangeInt(value, min, max), field, "is out of range")
}

func (c *Checker) MinLength(field, value string, min int) {
	c.Check(utf8.RuneCountInString(value) >= min, field, "is too short")
}

func (c *Checker) MaxLength(field, value string, max int) {
	c.Check(utf8.RuneCountInString(value) <= max, field, "is too long")
}

func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
