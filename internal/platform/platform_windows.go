//go:build windows

package platform

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// Windows is the implementation for Windows operating systems.
type Windows struct{}

// Current returns the implementation of the running platform.
func Current() *Windows {
	return &Windows{}
}

// Name returns the name of the platform.
func (*Windows) Name() string {
	return "windows"
}

// MaxPathLength returns the longest path (in bytes) that the platform
// accepts for existence checks.
func (*Windows) MaxPathLength() int {
	return windows.MAX_PATH - 2
}

// LinksAsCopies reports whether links should be replaced with copies when a
// caller allows it. Symbolic links need special privileges on Windows.
func (*Windows) LinksAsCopies() bool {
	return true
}

// NativePath translates separators into the native form of the platform.
func (*Windows) NativePath(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}

// Umask returns the file mode creation mask, which Windows does not have.
func (*Windows) Umask() fs.FileMode {
	return 0
}

// RemoveLink removes a symbolic link without following it. Links to
// directories (including dangling ones) need to be removed as directories.
func (*Windows) RemoveLink(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &fs.PathError{Op: "unlink", Path: path, Err: err}
	}

	if err := windows.DeleteFile(p); err != nil {
		if rmErr := windows.RemoveDirectory(p); rmErr == nil {
			return nil
		}

		return &fs.PathError{Op: "unlink", Path: path, Err: err}
	}

	return nil
}

// IsPrivilegeError reports whether err is ERROR_PRIVILEGE_NOT_HELD (1314).
func (*Windows) IsPrivilegeError(err error) bool {
	return errors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD)
}

// IsReadable reports whether the process may read path.
func (*Windows) IsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()

	return true
}

// Lchown is not supported on Windows and always fails.
func (*Windows) Lchown(path string, uid, gid int) error {
	return os.Lchown(path, uid, gid)
}

// LockExclusive acquires an exclusive lock on the first byte of an open file,
// blocking until it is granted. The returned function releases the lock.
func (*Windows) LockExclusive(f *os.File) (func() error, error) {
	handle := windows.Handle(f.Fd())
	overlapped := new(windows.Overlapped)

	if err := windows.LockFileEx(handle, windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, overlapped); err != nil {
		return nil, &fs.PathError{Op: "lock", Path: f.Name(), Err: err}
	}

	return func() error {
		if err := windows.UnlockFileEx(handle, 0, 1, 0, overlapped); err != nil {
			return &fs.PathError{Op: "unlock", Path: f.Name(), Err: err}
		}

		return nil
	}, nil
}

// EnsureWritable clears the read-only attribute of path, which Windows
// requires before the file can be removed.
func (*Windows) EnsureWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o200 == 0 {
		return os.Chmod(path, info.Mode().Perm()|0o200)
	}

	return nil
}
