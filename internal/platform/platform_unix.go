//go:build !windows

package platform

import (
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// Posix is the implementation for POSIX operating systems.
type Posix struct{}

// Current returns the implementation of the running platform.
func Current() *Posix {
	return &Posix{}
}

// Name returns the name of the platform.
func (*Posix) Name() string {
	return "posix"
}

// MaxPathLength returns the longest path (in bytes) that the platform
// accepts for existence checks.
func (*Posix) MaxPathLength() int {
	return maxPathLength
}

// LinksAsCopies reports whether links should be replaced with copies when a
// caller allows it. POSIX systems always support symbolic links.
func (*Posix) LinksAsCopies() bool {
	return false
}

// NativePath translates separators into the native form of the platform.
func (*Posix) NativePath(path string) string {
	return path
}

// Umask returns the current file mode creation mask of the process. Where
// procfs does not expose it, the mask is read by swapping it, during which
// files created by other goroutines get no mask applied.
func (*Posix) Umask() fs.FileMode {
	if mask, ok := procUmask(); ok {
		return mask
	}

	umaskMu.Lock()
	defer umaskMu.Unlock()

	mask := unix.Umask(0)
	unix.Umask(mask)

	return fs.FileMode(mask) & fs.ModePerm //nolint:gosec
}

// RemoveLink unlinks a symbolic link without following it.
func (*Posix) RemoveLink(path string) error {
	if err := unix.Unlink(path); err != nil {
		return &fs.PathError{Op: "unlink", Path: path, Err: err}
	}

	return nil
}

// IsPrivilegeError reports whether err is the privilege error of symbolic
// link creation. POSIX systems have no such dedicated error.
func (*Posix) IsPrivilegeError(_ error) bool {
	return false
}

// IsReadable reports whether the process may read path.
func (*Posix) IsReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

// Lchown changes the ownership of path without following a symbolic link.
func (*Posix) Lchown(path string, uid, gid int) error {
	if err := unix.Lchown(path, uid, gid); err != nil {
		return &fs.PathError{Op: "lchown", Path: path, Err: err}
	}

	return nil
}

// LockExclusive acquires an exclusive advisory lock on an open file, blocking
// until it is granted. The returned function releases the lock.
func (*Posix) LockExclusive(f *os.File) (func() error, error) {
	fd := int(f.Fd()) //nolint:gosec

	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return nil, &fs.PathError{Op: "flock", Path: f.Name(), Err: err}
	}

	return func() error {
		if err := unix.Flock(fd, unix.LOCK_UN); err != nil {
			return &fs.PathError{Op: "funlock", Path: f.Name(), Err: err}
		}

		return nil
	}, nil
}

// EnsureWritable makes path writable for its owner where the platform
// refuses to remove read-only files. POSIX systems do not.
func (*Posix) EnsureWritable(_ string) error {
	return nil
}
