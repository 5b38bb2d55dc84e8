// Package common - Error taxonomy shared by every detection stage.
package common

import "github.com/pkg/errors"

var (
	// ErrConfiguration marks invalid configuration values or inputs that fail
	// before any decoding begins. Not recoverable within a detection run.
	ErrConfiguration = errors.New("configuration error")

	// ErrInference marks a failure of the inference collaborator to produce
	// output tensors. It is never retried here.
	ErrInference = errors.New("inference failure")
)

// Configurationf wraps ErrConfiguration with a formatted reason.
func Configurationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// Inference wraps err so that errors.Is(err, ErrInference) holds while the
// original cause stays reachable through errors.Cause.
func Inference(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &inferenceError{msg: msg, cause: err}
}

type inferenceError struct {
	msg   string
	cause error
}

func (e *inferenceError) Error() string {
	return ErrInference.Error() + ": " + e.msg + ": " + e.cause.Error()
}

// Cause implements the pkg/errors causer interface.
func (e *inferenceError) Cause() error { return e.cause }

// Unwrap exposes the cause to the standard errors package.
func (e *inferenceError) Unwrap() error { return e.cause }

// Is reports true for ErrInference.
func (e *inferenceError) Is(target error) bool { return target == ErrInference }
