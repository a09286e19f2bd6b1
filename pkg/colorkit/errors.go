package colorkit

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgument is returned for arguments outside an operation's
	// domain, such as a non-positive polyad size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidColor is returned by ParseStrict and by tooling for input
	// that matches no color dialect.
	ErrInvalidColor = errors.New("invalid color")
)

// ErrorCategory classifies errors raised by colorkit tooling.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryParse is for unrecognized color input.
	ErrorCategoryParse
	// ErrorCategoryArgument is for invalid operation arguments.
	ErrorCategoryArgument
	// ErrorCategoryScript is for Lua script errors.
	ErrorCategoryScript
	// ErrorCategoryConfig is for configuration loading and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryIO is for file and I/O errors.
	ErrorCategoryIO
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryParse:
		return "parse"
	case ErrorCategoryArgument:
		return "argument"
	case ErrorCategoryScript:
		return "script"
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrorSeverity indicates the severity level of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for informational messages that don't require action.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for recoverable problems.
	SeverityWarning
	// SeverityError is for failed operations.
	SeverityError
	// SeverityCritical is for failures that stop the process.
	SeverityCritical
)

// String returns a human-readable name for the severity level.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with a category, severity and context.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the type of error.
	Category ErrorCategory
	// Severity indicates the urgency level.
	Severity ErrorSeverity
	// Timestamp is when the error occurred.
	Timestamp time.Time
	// Context provides additional key-value metadata.
	Context map[string]string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s/%s] (no error)", e.Severity, e.Category)
	}
	if input, ok := e.Context["input"]; ok {
		return fmt.Sprintf("[%s/%s] %s: %q", e.Severity, e.Category, e.Err.Error(), input)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Severity, e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a new CategorizedError with the given parameters.
func NewCategorizedError(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Severity:  severity,
		Timestamp: time.Now(),
		Context:   make(map[string]string),
	}
}

// WithContext adds a key-value pair to the error context and returns the error.
func (e *CategorizedError) WithContext(key, value string) *CategorizedError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// CategoryOf returns the category of the first CategorizedError in err's
// chain, or ErrorCategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ErrorCategoryUnknown
}
