// Package distfit holds the error kinds shared across the pipeline.
package distfit

import "github.com/pkg/errors"

// ArgumentError reports a malformed CLI invocation: wrong arg count, unknown
// target keyword, or a device name that doesn't resolve.
type ArgumentError struct {
	cause error
}

func NewArgumentError(msg string) error {
	return &ArgumentError{cause: errors.New(msg)}
}

func WrapArgumentError(err error, msg string) error {
	return &ArgumentError{cause: errors.Wrap(err, msg)}
}

func (e *ArgumentError) Error() string { return e.cause.Error() }
func (e *ArgumentError) Cause() error  { return e.cause }
func (e *ArgumentError) Unwrap() error { return e.cause }

// IOError reports a file-open or mid-stream read failure.
type IOError struct {
	cause error
}

func WrapIOError(err error, msg string) error {
	return &IOError{cause: errors.Wrap(err, msg)}
}

func (e *IOError) Error() string { return e.cause.Error() }
func (e *IOError) Cause() error  { return e.cause }
func (e *IOError) Unwrap() error { return e.cause }

// AcceleratorUnavailableError reports a failed accelerator worker: program
// compile or buffer allocation failure, surfaced only when the dispatch
// policy has no CPU fallback available.
type AcceleratorUnavailableError struct {
	WorkerID string
	cause    error
}

func WrapAcceleratorUnavailableError(workerID string, err error) error {
	return &AcceleratorUnavailableError{WorkerID: workerID, cause: errors.Wrap(err, "accelerator unavailable")}
}

func (e *AcceleratorUnavailableError) Error() string { return e.cause.Error() }
func (e *AcceleratorUnavailableError) Cause() error  { return e.cause }
func (e *AcceleratorUnavailableError) Unwrap() error { return e.cause }

// EmptyDatasetError reports zero valid values survived pass 1; pass 2 and the
// chi-square pipeline never run.
type EmptyDatasetError struct {
	cause error
}

func NewEmptyDatasetError() error {
	return &EmptyDatasetError{cause: errors.New("no valid values found in dataset")}
}

func (e *EmptyDatasetError) Error() string { return e.cause.Error() }
func (e *EmptyDatasetError) Cause() error  { return e.cause }
func (e *EmptyDatasetError) Unwrap() error { return e.cause }
