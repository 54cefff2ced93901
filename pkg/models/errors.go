package models

import (
	"errors"
	"fmt"
)

var ErrProvider = errors.New("embedding provider error")

// ProviderError wraps malformed or failed embedding provider output.
// A request that hits one fails; the cached matrix is left untouched.
type ProviderError struct {
	Message       string
	OriginalError error
}

func (e *ProviderError) Error() string {
	if e.OriginalError == nil {
		return fmt.Sprintf("embedding provider error: %s", e.Message)
	}
	return fmt.Sprintf("embedding provider error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}

func NewProviderError(message string, originalError error) *ProviderError {
	return &ProviderError{Message: message, OriginalError: originalError}
}

var ErrConfiguration = errors.New("configuration error")

// ConfigurationError is fatal and can only occur at startup, e.g. a
// vocabulary source that exists but cannot be read.
type ConfigurationError struct {
	Message       string
	OriginalError error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func NewConfigurationError(message string, originalError error) *ConfigurationError {
	return &ConfigurationError{Message: message, OriginalError: originalError}
}
