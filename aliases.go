package atomfs

import (
	"io"

	"github.com/desertwitch/atomfs/internal/schema"
)

type (
	// Content is the content of a file to be written, see [Bytes], [String]
	// and [Stream].
	Content = schema.Content

	// Error is the structured failure of an operation.
	Error = schema.Error

	// MirrorOptions control the behavior of [Filesystem.Mirror].
	MirrorOptions = schema.MirrorOptions

	// RemoteOpener opens remote origins for [Filesystem.Copy].
	RemoteOpener = schema.RemoteOpener

	// Walker walks the origin of [Filesystem.Mirror].
	Walker = schema.Walker
)

//nolint:gochecknoglobals
var (
	ErrNotFound          = schema.ErrNotFound
	ErrAlreadyExists     = schema.ErrAlreadyExists
	ErrWriteFailed       = schema.ErrWriteFailed
	ErrIncompleteCopy    = schema.ErrIncompleteCopy
	ErrRemovalFailed     = schema.ErrRemovalFailed
	ErrRenameFailed      = schema.ErrRenameFailed
	ErrLinkFailed        = schema.ErrLinkFailed
	ErrPrivilegeRequired = schema.ErrPrivilegeRequired
	ErrPathTooLong       = schema.ErrPathTooLong
	ErrUnsupportedType   = schema.ErrUnsupportedType
	ErrInvalidArgument   = schema.ErrInvalidArgument
	ErrNotDetermined     = schema.ErrNotDetermined
	ErrIOFailed          = schema.ErrIOFailed
	ErrHashMismatch      = schema.ErrHashMismatch
)

// Bytes returns [Content] holding data.
func Bytes(data []byte) Content {
	return schema.Bytes(data)
}

// String returns [Content] holding s.
func String(s string) Content {
	return schema.String(s)
}

// Stream returns [Content] read from r in a single pass.
func Stream(r io.Reader) Content {
	return schema.Stream(r)
}
