// Package filesystem implements the non-mutating and metadata operations of
// the module: existence and size checks, reading, appending, creating
// directories and files, permissions, ownership and timestamps, reading links,
// exclusive temporary files, mime type detection and checksums. It also holds
// the default [FileWalker] used for mirroring directory trees.
package filesystem

import (
	"io/fs"
	"os"
	"time"
)

// osProvider defines the operating system methods needed by a [Handler].
type osProvider interface {
	Chmod(name string, mode os.FileMode) error
	Chown(name string, uid, gid int) error
	Chtimes(name string, atime time.Time, mtime time.Time) error
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

// platformProvider defines the platform specific methods needed by a
// [Handler].
type platformProvider interface {
	MaxPathLength() int
	Umask() fs.FileMode
	Lchown(path string, uid, gid int) error
	LockExclusive(f *os.File) (func() error, error)
}

// Handler is the principal implementation for the filesystem operations.
type Handler struct {
	osHandler       osProvider
	platformHandler platformProvider
}

// NewHandler returns a pointer to a new filesystem [Handler].
func NewHandler(osHandler osProvider, platformHandler platformProvider) *Handler {
	return &Handler{
		osHandler:       osHandler,
		platformHandler: platformHandler,
	}
}

// Umask returns the file mode creation mask of the platform.
func (f *Handler) Umask() fs.FileMode {
	return f.platformHandler.Umask()
}
