// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level input errors into one
// VALIDATION_ERROR [apperr.AppError].
//
// Rules run in the order they are chained and every failure is kept, so a
// client fixing a form sees all problems at once while the message names
// the first.
package validate

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures. The zero value is ready to use; it is not
// safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// check records message for field when failed is true.
func (v *Validator) check(failed bool, field, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required fails on blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) == "", field, "This field is required")
}

// MaxLen fails when value has more than limit characters.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.check(utf8.RuneCountInString(value) > limit, field, fmt.Sprintf("Maximum %d characters", limit))
}

// Range fails when value is outside [low, high].
func (v *Validator) Range(field string, value, low, high int) *Validator {
	return v.check(value < low || value > high, field, fmt.Sprintf("Must be between %d and %d", low, high))
}

// URL fails unless value is an absolute http(s) URL with a host. Blank
// values are left to [Validator.Required].
func (v *Validator) URL(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v
	}

	parsed, err := url.Parse(value)
	invalid := err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https")
	return v.check(invalid, field, "Must be a valid http(s) URL")
}

// OneOf fails when value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(!slices.Contains(allowed, value), field, "Must be one of: "+strings.Join(allowed, ", "))
}

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err ends the chain: nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a single-field validation error outside a chain,
// e.g. for a malformed path parameter.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
