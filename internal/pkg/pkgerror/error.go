package pkgerror

import (
	"fmt"
	"net/http"
	"strings"
)

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeUnavailable
)

// Business is an error whose message is safe to return to callers.
type Business struct {
	message string
	code    Code
}

func NewBusiness(message string, code Code) *Business {
	return &Business{message: message, code: code}
}

func (e *Business) Error() string {
	return e.message
}

func (e *Business) Code() Code {
	return e.code
}

// FieldViolation describes one invalid field of an inbound request.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validation carries every violated field of a request, so callers can report
// all problems at once instead of fixing them one round-trip at a time.
type Validation struct {
	Fields []FieldViolation
}

func NewValidation(fields []FieldViolation) *Validation {
	return &Validation{Fields: fields}
}

func (e *Validation) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
