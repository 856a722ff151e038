package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/desertwitch/atomfs/internal/schema"
)

// Readlink returns the target of the symbolic link at path. With canonicalize
// set, it instead returns the absolute path with all symbolic links resolved,
// which also works for paths that are not links. An empty string is returned
// when path is not a link (without canonicalize) or does not resolve to an
// existing file (with canonicalize).
func (f *Handler) Readlink(path string, canonicalize bool) (string, error) {
	if canonicalize {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}

			return "", schema.NewError(schema.ErrIOFailed, "fs-readlink", path,
				fmt.Sprintf("failed to resolve %q", path), err)
		}

		abs, err := filepath.Abs(resolved)
		if err != nil {
			return "", schema.NewError(schema.ErrIOFailed, "fs-readlink", path,
				fmt.Sprintf("failed to resolve %q", path), err)
		}

		return abs, nil
	}

	info, err := f.osHandler.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", schema.NewError(schema.ErrIOFailed, "fs-readlink", path,
			fmt.Sprintf("failed to lstat %q", path), err)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return "", nil
	}

	target, err := f.osHandler.Readlink(path)
	if err != nil {
		return "", schema.NewError(schema.ErrIOFailed, "fs-readlink", path,
			fmt.Sprintf("failed to read link %q", path), err)
	}

	return target, nil
}

// IsSymlink reports whether path is a symbolic link, without following it.
func (f *Handler) IsSymlink(path string) bool {
	info, err := f.osHandler.Lstat(path)

	return err == nil && info.Mode()&fs.ModeSymlink != 0
}
