package filesystem

import (
	"fmt"
	"io/fs"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Mkdir recursively creates all given directories with the given mode (which
// is subject to the umask). Existing directories are left untouched, but an
// existing path that is not a directory is an error.
func (f *Handler) Mkdir(mode fs.FileMode, paths ...string) error {
	for _, path := range paths {
		if info, err := f.osHandler.Stat(path); err == nil && info.IsDir() {
			continue
		}

		res := capture.Call(func() error {
			return f.osHandler.MkdirAll(path, mode)
		})
		if !res.OK() {
			return schema.NewError(schema.ErrIOFailed, "fs-mkdir", path,
				fmt.Sprintf("failed to create %q", path), res.Err)
		}

		if info, err := f.osHandler.Stat(path); err != nil || !info.IsDir() {
			return schema.NewError(schema.ErrIOFailed, "fs-mkdir", path,
				fmt.Sprintf("failed to create %q", path), err)
		}
	}

	return nil
}
