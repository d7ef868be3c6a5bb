package handler

import "github.com/medrec/patient-api/internal/validation"

type Response struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []validation.Violation `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewValidationErrorResponse carries every violation found, so the
// client can annotate all offending form fields in one round trip.
func NewValidationErrorResponse(violations []validation.Violation) *Response {
	return &Response{
		Status:  "error",
		Message: "validation failed",
		Errors:  violations,
	}
}
