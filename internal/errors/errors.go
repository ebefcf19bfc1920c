// Package errors defines stable error codes for the analysis pipeline.
// Only InvalidRoot is fatal to a run; every other failure mode degrades
// file-by-file and the pipeline still produces a report.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidRoot indicates the analysis root path does not exist or is not a directory
	InvalidRoot ErrorCode = "INVALID_ROOT"
	// DiscoveryFailed indicates a subtree could not be read during discovery
	DiscoveryFailed ErrorCode = "DISCOVERY_FAILED"
	// ParseDegraded indicates a file could not be read or parsed and was
	// degraded to an empty-dependency node
	ParseDegraded ErrorCode = "PARSE_DEGRADED"
	// ReportWriteFailed indicates the caller-requested report output could not be written
	ReportWriteFailed ErrorCode = "REPORT_WRITE_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AnalysisError represents a pipeline error with a stable code
type AnalysisError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AnalysisError
func New(code ErrorCode, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalysisError) WithDetails(details interface{}) *AnalysisError {
	e.Details = details
	return e
}

// IsFatal reports whether the error aborts the whole run. Everything except
// an invalid root degrades gracefully.
func IsFatal(err error) bool {
	ae, ok := err.(*AnalysisError)
	return ok && ae.Code == InvalidRoot
}
