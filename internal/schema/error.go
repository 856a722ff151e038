package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/desertwitch/atomfs/internal/capture"
)

var (
	// ErrNotFound is an error that occurs when a required source path does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is an error that occurs when a rename target already
	// exists and overwriting was not requested.
	ErrAlreadyExists = errors.New("already exists")

	// ErrWriteFailed is an error that occurs when content could not be
	// written (completely) to a file.
	ErrWriteFailed = errors.New("write failed")

	// ErrIncompleteCopy is an error that occurs when the amount of copied
	// bytes (or their checksum) does not match the origin of a copy.
	ErrIncompleteCopy = errors.New("incomplete copy")

	// ErrRemovalFailed is an error that occurs when a file, link or directory
	// could not be removed.
	ErrRemovalFailed = errors.New("removal failed")

	// ErrRenameFailed is an error that occurs when a rename failed and no
	// fallback was possible.
	ErrRenameFailed = errors.New("rename failed")

	// ErrLinkFailed is an error that occurs when a symbolic or hard link could
	// not be created.
	ErrLinkFailed = errors.New("link failed")

	// ErrPrivilegeRequired is a [ErrLinkFailed] variant that occurs when the
	// operating system refused a symbolic link for lack of privileges.
	ErrPrivilegeRequired = fmt.Errorf("%w: required privilege not held", ErrLinkFailed)

	// ErrPathTooLong is an error that occurs when a path exceeds the maximum
	// path length of the platform.
	ErrPathTooLong = errors.New("path too long")

	// ErrUnsupportedType is an error that occurs when a mirror encounters an
	// entry that is neither a file, a directory nor a symbolic link.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrInvalidArgument is an error that occurs with malformed path input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotDetermined is an error that occurs when a property of a file
	// (such as its mime type) could not be determined.
	ErrNotDetermined = errors.New("not determined")

	// ErrIOFailed is a generic error for failed filesystem operations that
	// are not covered by a more specific kind.
	ErrIOFailed = errors.New("i/o failure")

	// ErrHashMismatch is an error that occurs when there is a source/target
	// checksum mismatch, this usually means that there are underlying
	// transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")
)

// Error is the structured failure of a single filesystem mutation. It unwraps
// into both its Kind and the underlying (operating system) error, so that
// [errors.Is] matches either of them.
type Error struct {
	Kind   error
	Op     string
	Path   string
	Target string
	Msg    string
	Err    error
}

// NewError returns a pointer to a new [Error].
func NewError(kind error, op string, path string, msg string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Msg:  msg,
		Err:  err,
	}
}

// WithTarget sets the secondary path of a two-path operation (such as rename
// or link) and returns the same [Error].
func (e *Error) WithTarget(target string) *Error {
	e.Target = target

	return e
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString("(")
	sb.WriteString(e.Op)
	sb.WriteString(") ")
	sb.WriteString(e.Msg)

	if msg := (capture.Result{Err: e.Err}).Message(); msg != "" {
		sb.WriteString(": ")
		sb.WriteString(msg)
	}

	return sb.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2) //nolint:mnd

	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}
