package lua

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrNotAColor is returned when a color userdata argument is expected.
	ErrNotAColor = errors.New("expected color userdata")

	// ErrNoFunction is returned by CallFunction for undefined globals.
	ErrNoFunction = errors.New("function not found")

	// ErrLimitExceeded is wrapped by errors from scripts that ran out of
	// their CPU or memory budget.
	ErrLimitExceeded = errors.New("script resource limit exceeded")
)

// ScriptError is a compile or runtime failure of a named Lua chunk.
type ScriptError struct {
	Script string
	Err    error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Categorize classifies an error returned by the runtime. Unreadable
// script files are io errors, resource limit violations are critical
// script errors and everything else is a script error.
func Categorize(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return colorkit.NewCategorizedError(err, colorkit.ErrorCategoryIO, colorkit.SeverityError)
	}

	severity := colorkit.SeverityError
	if errors.Is(err, ErrLimitExceeded) {
		severity = colorkit.SeverityCritical
	}
	ce := colorkit.NewCategorizedError(err, colorkit.ErrorCategoryScript, severity)
	var se *ScriptError
	if errors.As(err, &se) {
		ce.WithContext("script", se.Script)
	}
	return ce
}
