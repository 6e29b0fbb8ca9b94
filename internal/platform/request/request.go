// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/scrapbook/internal/platform/ctxutil"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
	"github.com/taibuivan/scrapbook/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: a VALIDATION_ERROR naming the field when a value has the wrong
    type, validate.ErrInvalidJSON for any other decoding failure
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	err := json.NewDecoder(request.Body).Decode(target)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validate.RequiredError(typeErr.Field, typeMessage(typeErr.Type))
	}
	return validate.ErrInvalidJSON
}

func typeMessage(expected reflect.Type) string {
	for expected != nil && expected.Kind() == reflect.Pointer {
		expected = expected.Elem()
	}
	if expected == nil {
		return "Has the wrong type"
	}

	switch expected.Kind() {
	case reflect.String:
		return "Must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Must be an integer"
	case reflect.Float32, reflect.Float64:
		return "Must be a number"
	case reflect.Bool:
		return "Must be a boolean"
	default:
		return "Has the wrong type"
	}
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a base-10 int64.

Returns:
  - error: a VALIDATION_ERROR naming the parameter if it is not an integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer")
	}
	return value, nil
}

/*
Role returns the role of the caller, viewer for anonymous requests.
*/
func Role(request *http.Request) sec.Role {
	return ctxutil.GetRole(request.Context())
}
