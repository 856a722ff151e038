package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Touch sets the modification and access times of all given paths, creating
// empty files for paths that do not exist. A nil mtime means the current
// time, a nil atime means the same time as mtime.
func (f *Handler) Touch(mtime *time.Time, atime *time.Time, paths ...string) error {
	modified := time.Now()
	if mtime != nil {
		modified = *mtime
	}

	accessed := modified
	if atime != nil {
		accessed = *atime
	}

	for _, path := range paths {
		if _, err := f.osHandler.Stat(path); errors.Is(err, fs.ErrNotExist) {
			file, res := capture.Value(func() (*os.File, error) {
				return f.osHandler.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o666) //nolint:mnd
			})
			if !res.OK() {
				return schema.NewError(kindOf(res.Err), "fs-touch", path,
					fmt.Sprintf("failed to touch %q", path), res.Err)
			}
			file.Close()
		}

		res := capture.Call(func() error {
			return f.osHandler.Chtimes(path, accessed, modified)
		})
		if !res.OK() {
			return schema.NewError(kindOf(res.Err), "fs-touch", path,
				fmt.Sprintf("failed to touch %q", path), res.Err)
		}
	}

	return nil
}
