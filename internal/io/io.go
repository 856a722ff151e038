// Package io implements the mutating operations of the module: atomic content
// writes, recursive removal with rollback, copies and renames with fallbacks,
// symbolic and hard links, and the mirroring of directory trees. All of them
// are composed on a single [Handler].
package io

import (
	"io/fs"
	"os"
	"time"

	"github.com/desertwitch/atomfs/internal/filesystem"
	"github.com/desertwitch/atomfs/internal/schema"
)

// fsProvider defines the filesystem methods needed by a [Handler].
type fsProvider interface {
	Checksum(path string) (string, error)
	CreateTempFile(dir string, prefix string, suffix string) (*os.File, error)
	IsSymlink(path string) bool
	Mkdir(mode fs.FileMode, paths ...string) error
	Umask() fs.FileMode
	Walker(followLinks bool) *filesystem.FileWalker
}

// osProvider defines the operating system methods needed by a [Handler].
type osProvider interface {
	Chmod(name string, mode os.FileMode) error
	Chtimes(name string, atime time.Time, mtime time.Time) error
	Link(oldname, newname string) error
	Lstat(name string) (os.FileInfo, error)
	Mkdir(name string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	Symlink(oldname, newname string) error
}

// platformProvider defines the platform specific methods needed by a
// [Handler].
type platformProvider interface {
	EnsureWritable(path string) error
	IsPrivilegeError(err error) bool
	IsReadable(path string) bool
	LinksAsCopies() bool
	NativePath(path string) string
	RemoveLink(path string) error
}

// Options are the optional behaviors of a [Handler].
type Options struct {
	// RemoteOpener serves copies from remote origins (such as "https://").
	// Without it, remote origins are refused.
	RemoteOpener schema.RemoteOpener

	// VerifyCopies re-reads every copied file and compares its checksum with
	// the checksum of the streamed origin.
	VerifyCopies bool
}

// Handler is the principal implementation for the mutating operations.
type Handler struct {
	fsHandler       fsProvider
	osHandler       osProvider
	platformHandler platformProvider
	opts            Options
}

// NewHandler returns a pointer to a new IO [Handler].
func NewHandler(fsHandler fsProvider, osHandler osProvider, platformHandler platformProvider, opts Options) *Handler {
	return &Handler{
		fsHandler:       fsHandler,
		osHandler:       osHandler,
		platformHandler: platformHandler,
		opts:            opts,
	}
}
