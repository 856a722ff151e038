package atomfs

import (
	"io/fs"
	"time"

	"github.com/desertwitch/atomfs/internal/filesystem"
	"github.com/desertwitch/atomfs/internal/io"
	"github.com/desertwitch/atomfs/internal/platform"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Option configures a [Filesystem].
type Option func(*io.Options)

// WithRemoteOpener allows [Filesystem.Copy] to copy from remote origins (such
// as "https://") opened by opener.
func WithRemoteOpener(opener RemoteOpener) Option {
	return func(o *io.Options) {
		o.RemoteOpener = opener
	}
}

// WithVerifiedCopies makes [Filesystem.Copy] (and everything built on it)
// compare the checksum of every copied file with the checksum of its origin.
func WithVerifiedCopies(verify bool) Option {
	return func(o *io.Options) {
		o.VerifyCopies = verify
	}
}

// Filesystem exposes the operations on the filesystem of the operating
// system. It holds no mutable state and is safe for concurrent use, but
// concurrent operations on the same paths race like the underlying
// operating system calls do.
type Filesystem struct {
	fsHandler *filesystem.Handler
	ioHandler *io.Handler
}

// New returns a pointer to a new [Filesystem].
func New(opts ...Option) *Filesystem {
	var options io.Options
	for _, opt := range opts {
		opt(&options)
	}

	osProvider := &schema.OS{}
	platformProvider := platform.Current()

	fsHandler := filesystem.NewHandler(osProvider, platformProvider)
	ioHandler := io.NewHandler(fsHandler, osProvider, platformProvider, options)

	return &Filesystem{
		fsHandler: fsHandler,
		ioHandler: ioHandler,
	}
}

// Exists reports whether all given paths exist, without following symbolic
// links. Paths exceeding the maximum path length of the platform result in
// [ErrPathTooLong].
func (f *Filesystem) Exists(paths ...string) (bool, error) {
	return f.fsHandler.Exists(paths...) //nolint:wrapcheck
}

// IsEmptyFolder reports whether path is a directory without entries.
func (f *Filesystem) IsEmptyFolder(path string) (bool, error) {
	return f.fsHandler.IsEmptyFolder(path) //nolint:wrapcheck
}

// MimeType returns the mime type of the file at path, sniffed from its
// content with its extension as fallback.
func (f *Filesystem) MimeType(path string) (string, error) {
	return f.fsHandler.MimeType(path) //nolint:wrapcheck
}

// Size returns the size in bytes of the file at path.
func (f *Filesystem) Size(path string) (int64, error) {
	return f.fsHandler.Size(path) //nolint:wrapcheck
}

// ReadFile returns the contents of the file at path.
func (f *Filesystem) ReadFile(path string) ([]byte, error) {
	return f.fsHandler.ReadFile(path) //nolint:wrapcheck
}

// DumpFile atomically replaces the contents of the file at path.
func (f *Filesystem) DumpFile(path string, content Content) error {
	return f.ioHandler.DumpFile(path, content) //nolint:wrapcheck
}

// AppendToFile appends content to the file at path, optionally holding an
// exclusive lock on it while writing.
func (f *Filesystem) AppendToFile(path string, content Content, lock bool) error {
	return f.fsHandler.AppendToFile(path, content, lock) //nolint:wrapcheck
}

// Mkdir recursively creates all given directories.
func (f *Filesystem) Mkdir(mode fs.FileMode, paths ...string) error {
	return f.fsHandler.Mkdir(mode, paths...) //nolint:wrapcheck
}

// Remove removes files, links and directory trees.
func (f *Filesystem) Remove(paths ...string) error {
	return f.ioHandler.Remove(paths...) //nolint:wrapcheck
}

// Rename renames origin to target, replacing target only with overwrite.
func (f *Filesystem) Rename(origin string, target string, overwrite bool) error {
	return f.ioHandler.Rename(origin, target, overwrite) //nolint:wrapcheck
}

// Copy copies the file origin to target. A target that is not older than
// its origin is only replaced with overwriteNewerFiles.
func (f *Filesystem) Copy(origin string, target string, overwriteNewerFiles bool) error {
	return f.ioHandler.Copy(origin, target, overwriteNewerFiles) //nolint:wrapcheck
}

// Touch sets the modification and access times of all given paths, creating
// missing files. Nil times mean the current time (mtime) and the same time
// as mtime (atime).
func (f *Filesystem) Touch(mtime *time.Time, atime *time.Time, paths ...string) error {
	return f.fsHandler.Touch(mtime, atime, paths...) //nolint:wrapcheck
}

// Chmod sets mode (masked with umask) on all given paths.
func (f *Filesystem) Chmod(mode fs.FileMode, umask fs.FileMode, recursive bool, paths ...string) error {
	return f.fsHandler.Chmod(mode, umask, recursive, paths...) //nolint:wrapcheck
}

// Chown sets the owning user (a name or a numeric id) of all given paths.
func (f *Filesystem) Chown(owner string, recursive bool, paths ...string) error {
	return f.fsHandler.Chown(owner, recursive, paths...) //nolint:wrapcheck
}

// Chgrp sets the owning group (a name or a numeric id) of all given paths.
func (f *Filesystem) Chgrp(group string, recursive bool, paths ...string) error {
	return f.fsHandler.Chgrp(group, recursive, paths...) //nolint:wrapcheck
}

// Symlink creates a symbolic link at target pointing to origin.
func (f *Filesystem) Symlink(origin string, target string, copyOnWindows bool) error {
	return f.ioHandler.Symlink(origin, target, copyOnWindows) //nolint:wrapcheck
}

// Hardlink creates hard links to origin at all given targets.
func (f *Filesystem) Hardlink(origin string, targets ...string) error {
	return f.ioHandler.Hardlink(origin, targets...) //nolint:wrapcheck
}

// Mirror mirrors the directory tree origin to target. A nil walker walks
// origin in lexical order.
func (f *Filesystem) Mirror(origin string, target string, walker Walker, opts MirrorOptions) error {
	return f.ioHandler.Mirror(origin, target, walker, opts) //nolint:wrapcheck
}

// Readlink returns the target of a symbolic link, or with canonicalize the
// fully resolved absolute path.
func (f *Filesystem) Readlink(path string, canonicalize bool) (string, error) {
	return f.fsHandler.Readlink(path, canonicalize) //nolint:wrapcheck
}

// TempFile creates a new, empty file with a unique name inside dir.
func (f *Filesystem) TempFile(dir string, prefix string, suffix string) (string, error) {
	return f.fsHandler.TempFile(dir, prefix, suffix) //nolint:wrapcheck
}

// Checksum returns the hex encoded BLAKE3 digest of the file at path.
func (f *Filesystem) Checksum(path string) (string, error) {
	return f.fsHandler.Checksum(path) //nolint:wrapcheck
}

// Umask returns the file mode creation mask of the process.
func (f *Filesystem) Umask() fs.FileMode {
	return f.fsHandler.Umask()
}
