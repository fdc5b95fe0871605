package hotel

import (
	"errors"
	"fmt"
)

// Code is a canonical error code.
type Code string

const (
	CodeInvalidDates           Code = "INVALID_DATES"
	CodeInvalidGuests          Code = "INVALID_GUESTS"
	CodePropertyNotFound       Code = "PROPERTY_NOT_FOUND"
	CodeRoomUnavailable        Code = "ROOM_UNAVAILABLE"
	CodeRateExpired            Code = "RATE_EXPIRED"
	CodePaymentFailed          Code = "PAYMENT_FAILED"
	CodeBookingNotFound        Code = "BOOKING_NOT_FOUND"
	CodeModificationNotAllowed Code = "MODIFICATION_NOT_ALLOWED"
	CodeCancellationNotAllowed Code = "CANCELLATION_NOT_ALLOWED"
	CodeProviderError          Code = "PROVIDER_ERROR"
	CodeInternalError          Code = "INTERNAL_ERROR"
	CodeInvalidRequest         Code = "INVALID_REQUEST"
	CodeUnknownTool            Code = "UNKNOWN_TOOL"
)

// StatusError is the envelope status of every failed call.
const StatusError = "error"

// Suggestion points the caller at a follow-up tool call.
type Suggestion struct {
	Action string         `json:"action"`
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params,omitempty"`
}

// Error is the canonical failure returned by every provider and tool.
type Error struct {
	Code        Code           `json:"code"`
	Message     string         `json:"message"`
	Details     map[string]any `json:"details,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
}

// NewError creates an Error with a fixed message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates an Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// WithDetail attaches a structured detail.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion appends a follow-up suggestion.
func (e *Error) WithSuggestion(s Suggestion) *Error {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// AsError reports whether err is or wraps a canonical Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ErrorEnvelope is the serialized form of a failed call.
type ErrorEnvelope struct {
	Status string `json:"status"`
	Error  *Error `json:"error"`
}

// Envelope wraps e for serialization.
func Envelope(e *Error) ErrorEnvelope {
	return ErrorEnvelope{Status: StatusError, Error: e}
}
