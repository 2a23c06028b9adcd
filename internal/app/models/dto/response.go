package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// APIResponse is the standard success envelope for API endpoints
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps data in the standard envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a message-only success body
type SuccessResponse struct {
	Message string `json:"message"`
}

// HandleValidationError turns a gin binding error into an ErrorDetail,
// naming the first failing field when the error came from the validator.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		detail := NewErrorDetail(ErrorCodeValidationFailed,
			fmt.Sprintf("Field '%s' failed validation on '%s'", fe.Field(), fe.Tag()))
		return detail.WithField(fe.Field())
	}

	return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
}
