package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/weekendly/internal/logger"
)

// UserError pairs an end-user message with the underlying cause
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WithMessage attaches a user-facing message to err. It returns nil for a nil err.
func WithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &UserError{Message: msg, Err: err}
}

// Format formats an error message with a consistent "Error: " prefix.
// A UserError anywhere in the chain contributes only its message.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if stderrors.As(err, &ue) {
		return fmt.Sprintf("Error: %s", ue.Message)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
