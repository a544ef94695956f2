package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is the distinguished "bad request" signal from the
// backend: a 400 or 422 response carrying a JSON error body. Resource
// routes map it to a 400 with the backend's message and details.
type ValidationError struct {
	Status  int
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("backend validation failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend validation failed (%d): %s [%s]", e.Status, e.Message, strings.Join(e.Details, "; "))
}

// StatusError is any other non-success backend response. The gateway passes
// the status through for sign-in and maps it to 500 on resource routes.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
