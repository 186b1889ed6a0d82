package errors

import (
	"fmt"
	"time"
)

/*
	Utility functions to facillitate returning error responses to HTTP clients
*/

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}

type GeneralError struct {
	// field the error is attributed to, for form-level display
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// -- Simplest: 1 error with message
func CreateSimpleBadRequest(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      400,
		Message:   "Bad Request",
		Timestamp: time.Now(),
		Errors: []GeneralError{
			{
				Message: message,
			},
		},
	}
}

// Field-attributed validation error, shaped for the form-rendering layer
func CreateFieldValidationError(field string, message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      400,
		Message:   "Bad Request",
		Timestamp: time.Now(),
		Errors: []GeneralError{
			{
				Field:   field,
				Message: fmt.Sprintf("ValidationError for %s: %s", field, message),
			},
		},
	}
}

func CreateSimpleUnauthorized(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      401,
		Message:   "Unauthorized",
		Timestamp: time.Now(),
		Errors: []GeneralError{
			{
				Message: message,
			},
		},
	}
}

func CreateSimpleNotFound(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      404,
		Message:   "Not Found",
		Timestamp: time.Now(),
		Errors: []GeneralError{
			{
				Message: message,
			},
		},
	}
}

func CreateSimpleInternalServerError(message string) GeneralErrorResponseDto {
	return GeneralErrorResponseDto{
		Code:      500,
		Message:   "Internal Server Error",
		Timestamp: time.Now(),
		Errors: []GeneralError{
			{
				Message: message,
			},
		},
	}
}
