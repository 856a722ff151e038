// Package capture wraps single operating system calls and exposes their
// outcome, including the verbatim message of the operating system, as a value.
// Callers branch on [Result.OK] and attach [Result.Message] to the structured
// failure they return.
package capture

import (
	"errors"
	"io/fs"
	"os"
)

// Result is the outcome of exactly one wrapped operating system call.
type Result struct {
	Err error
}

// OK reports whether the wrapped call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the innermost message of the operating system, without the
// operation and path decorations added by the [os] package. It is empty for
// a successful call.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}

	return cause(r.Err).Error()
}

// Cause returns the innermost operating system error, or nil for a
// successful call.
func (r Result) Cause() error {
	if r.Err == nil {
		return nil
	}

	return cause(r.Err)
}

// Call invokes fn once and captures its outcome.
func Call(fn func() error) Result {
	return Result{Err: fn()}
}

// Value invokes fn once and captures its outcome alongside the returned value.
func Value[T any](fn func() (T, error)) (T, Result) {
	v, err := fn()

	return v, Result{Err: err}
}

func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil {
		return pathErr.Err
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && linkErr.Err != nil {
		return linkErr.Err
	}

	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) && sysErr.Err != nil {
		return sysErr.Err
	}

	return err
}
