package dto

import "time"

// Envelope wraps every API response.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Details   any       `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse documents the error envelope in swagger annotations.
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Error   ErrorDetail `json:"error"`
}

type MessageDTO struct {
	Message string `json:"message"`
}
