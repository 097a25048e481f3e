package helpers

import (
	"fmt"

	"trading-dashboard/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions where the caller cares
type ConfigurationError struct{ DashboardError }
type TransportError struct{ DashboardError }
type GenerationError struct{ DashboardError }

// -----------------------------------------------------------------------------

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{DashboardError{Message: message, Cause: cause}}
}

func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{DashboardError{Message: message, Cause: cause}}
}

func NewGenerationError(message string, cause error) *GenerationError {
	return &GenerationError{DashboardError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// Handle logs a non-fatal error and keeps a running count. No error here is
// fatal to the process; a failed tick or client write just waits for the next.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.ErrorCount++
	e.Logger.Error("Error in %s: %v", context, err)
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.ErrorCount = 0
}
