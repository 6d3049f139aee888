package errors

import "fmt"

// ErrorCategory classifies failures by how callers should react.
type ErrorCategory string

const (
	// Malformed input: a bar violates the OHLC invariant or carries a
	// negative volume. Fails the whole computation loudly.
	ErrorCategoryValidation ErrorCategory = "VALIDATION"

	// Fewer bars than an indicator's window. Handled per-field with the
	// undefined marker, surfaced as an error only at aggregate level.
	ErrorCategoryData ErrorCategory = "DATA"

	// Storage faults. Reads degrade to cache-miss, writes are logged and
	// swallowed; this category never aborts the pipeline.
	ErrorCategoryCache ErrorCategory = "CACHE"

	// Failures of the out-of-process collaborators (market-data API, LLM).
	ErrorCategoryExternal ErrorCategory = "EXTERNAL"
)

// AnalysisError is a categorized error with component context.
type AnalysisError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *AnalysisError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable reports whether the pipeline can proceed past this error
// with a degraded payload.
func (e *AnalysisError) IsRecoverable() bool {
	return e.Category == ErrorCategoryCache || e.Category == ErrorCategoryExternal
}

// New creates a categorized error.
func New(category ErrorCategory, component, operation, message string) *AnalysisError {
	return &AnalysisError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Wrap attaches category and component context to an existing error.
func Wrap(err error, category ErrorCategory, component, operation string) *AnalysisError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &AnalysisError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    msg,
		Underlying: err,
	}
}
