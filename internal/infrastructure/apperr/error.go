package apperr

import (
	"errors"
)

const (
	CodeBadRequest   Code = "core/bad_request"
	CodeUnauthorized Code = "core/unauthorized"
	CodeForbidden    Code = "core/forbidden"
	CodeInternal     Code = "core/internal_error"
	CodeUpstream     Code = "core/upstream_error"
)

const (
	BadRequestMsg   = "Bad request"
	UnauthorizedMsg = "Unauthorized"
	ForbiddenMsg    = "Forbidden"
	InternalMsg     = "Internal server error"
)

func ErrBadRequest() *appError {
	return &appError{
		Message:  BadRequestMsg,
		Code:     CodeBadRequest,
		class:    ClassBadRequest,
		logLevel: LogLevelWarn,
		detail:   BadRequestMsg,
	}
}

func ErrUnauthorized() *appError {
	return &appError{
		Message:  UnauthorizedMsg,
		Code:     CodeUnauthorized,
		class:    ClassUnauthorized,
		logLevel: LogLevelWarn,
		detail:   UnauthorizedMsg,
	}
}

func ErrForbidden() *appError {
	return &appError{
		Message:  ForbiddenMsg,
		Code:     CodeForbidden,
		class:    ClassForbidden,
		logLevel: LogLevelWarn,
		detail:   ForbiddenMsg,
	}
}

// ErrUpstream covers backend responses that are neither success nor a
// declared validation failure. The user message stays generic; the upstream
// status and body go to the logs only.
func ErrUpstream(detail string) *appError {
	return &appError{
		Message:  InternalMsg,
		Code:     CodeUpstream,
		class:    ClassInternal,
		logLevel: LogLevelError,
		detail:   detail,
	}
}

// appError is used for all application-level errors that should be shown to the user (e.g. 400, 401, 403).
// For internal server errors (500), use fmt.Errorf and handle them separately to avoid exposing internal details to the client.
type appError struct {
	Message  string   `json:"message"` // Message for user
	Code     Code     `json:"code"`
	Details  []string `json:"details,omitempty"` // validation details passed through from the backend
	class    Class
	logLevel LogLevel
	detail   string // detail for logs
}

func New(message string, code Code, class Class, logLevel LogLevel) *appError {
	return &appError{
		Message:  message,
		class:    class,
		logLevel: logLevel,
		Code:     code,
		detail:   message,
	}
}

func (e *appError) WithUserMessage(message string) *appError {
	e.Message = message
	return e
}

func (e *appError) WithDetail(detail string) *appError {
	e.detail = detail
	return e
}

func (e *appError) WithDetails(details []string) *appError {
	e.Details = details
	return e
}

func (e *appError) Error() string {
	return e.detail
}

func (e *appError) Is(target error) bool {
	if t, ok := target.(*appError); ok {
		return e.Code == t.Code
	}

	return false
}

type Code string

type Class uint8

const (
	ClassInternal     Class = 1
	ClassBadRequest   Class = 2
	ClassNotFound     Class = 3
	ClassUnauthorized Class = 4
	ClassForbidden    Class = 5
	ClassConflict     Class = 6
)

type LogLevel int

const (
	LogLevelError LogLevel = 0
	LogLevelWarn  LogLevel = 1
)

func ClassOf(err error) Class {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.class
	}
	return ClassInternal
}

func CodeOf(err error) Code {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

func LogLevelOf(err error) LogLevel {
	var ae *appError
	if errors.As(err, &ae) {
		return ae.logLevel
	}
	return LogLevelError
}

func FromError(err error) *appError {
	var ae *appError
	if errors.As(err, &ae) {
		return ae
	}
	return &appError{
		Message:  InternalMsg,
		Code:     CodeInternal,
		class:    ClassInternal,
		logLevel: LogLevelError,
		detail:   err.Error(),
	}
}
