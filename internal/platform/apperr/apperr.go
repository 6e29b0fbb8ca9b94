// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by the scrapbook services and
the HTTP layer.

An [AppError] carries everything [respond.Error] needs to write the
{message, code, details} envelope. Anything that is not an AppError reaching
a handler is treated as an internal failure.

Codes:

  - VALIDATION_ERROR (400): bad create input or malformed id.
  - UNAUTHORIZED (401) / FORBIDDEN (403): capability checks.
  - NOT_FOUND (404): unknown route or disabled admin endpoint.
  - RATE_LIMITED (429): per-IP limiter.
  - STORE_UNAVAILABLE / INTERNAL_ERROR (500): the store failed or a bug.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// AppError is a client-safe error. Cause is for server logs only and never
// serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Admin access").
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// ValidationError reports bad input. With details, the message names the
// first failing field so clients reading only "message" still learn what
// to fix.
func ValidationError(message string, details ...FieldError) *AppError {
	if len(details) > 0 {
		message = details[0].Field + ": " + details[0].Message
	}
	appError := newError(http.StatusBadRequest, CodeValidation, message)
	appError.Details = details
	return appError
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// StoreUnavailable reports a failing item store. It is not retried here.
func StoreUnavailable(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeStoreUnavailable, "The scrapbook store is unavailable")
	appError.Cause = cause
	return appError
}

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
