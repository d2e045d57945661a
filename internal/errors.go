package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrDeleteRejected is returned when the server answers a delete with false
	ErrDeleteRejected = errors.New("server rejected delete")
	// ErrModelNotFound is returned when a model reference is not in the catalog
	ErrModelNotFound = errors.New("model not found")
)

// APIError represents a failed call to the remote service
type APIError struct {
	Op         string // "list sessions", "send message", ...
	StatusCode int    // 0 when the request never got a response
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api error: %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
