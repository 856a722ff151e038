package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Exists checks if all given paths exist. A path longer than the maximum
// path length of the platform results in [schema.ErrPathTooLong], before any
// call to the operating system is made. Symbolic links are not followed.
func (f *Handler) Exists(paths ...string) (bool, error) {
	maxLen := f.platformHandler.MaxPathLength()

	for _, path := range paths {
		if len(path) > maxLen {
			return false, schema.NewError(schema.ErrPathTooLong, "fs-exists", path,
				fmt.Sprintf("could not check if file exist because path length exceeds %d characters", maxLen), nil)
		}

		if _, err := f.osHandler.Lstat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}

			return false, schema.NewError(schema.ErrIOFailed, "fs-exists", path, "failed to lstat", err)
		}
	}

	return true, nil
}

// IsEmptyFolder is a helper function checking if a path is an empty folder.
func (f *Handler) IsEmptyFolder(path string) (bool, error) {
	entries, err := f.osHandler.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("(fs-isempty) failed to readdir: %w", err)
	}

	return len(entries) == 0, nil
}

// Size returns the size in bytes of the file at path, following symbolic
// links.
func (f *Handler) Size(path string) (int64, error) {
	info, res := capture.Value(func() (fs.FileInfo, error) {
		return f.osHandler.Stat(path)
	})
	if !res.OK() {
		kind := schema.ErrIOFailed
		if errors.Is(res.Err, fs.ErrNotExist) {
			kind = schema.ErrNotFound
		}

		return 0, schema.NewError(kind, "fs-size", path,
			fmt.Sprintf("failed to get size of %q", path), res.Err)
	}

	return info.Size(), nil
}
