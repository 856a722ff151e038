package filesystem

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

const (
	// TempFileAttempts is the amount of random names tried before giving up
	// on creating a temporary file.
	TempFileAttempts = 10

	tempFileMode = 0o600
)

// CreateTempFile exclusively creates a new file with a random name composed
// of prefix and suffix inside dir, and returns it opened for reading and
// writing. The caller owns the file and is responsible for its removal.
func (f *Handler) CreateTempFile(dir string, prefix string, suffix string) (*os.File, error) {
	var lastRes capture.Result

	for i := 0; i < TempFileAttempts; i++ {
		name, err := randomName(prefix, suffix)
		if err != nil {
			return nil, fmt.Errorf("(fs-tempfile) failed to generate name: %w", err)
		}

		path := filepath.Join(dir, name)

		file, res := capture.Value(func() (*os.File, error) {
			return f.osHandler.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, tempFileMode)
		})
		if res.OK() {
			return file, nil
		}

		if !errors.Is(res.Err, fs.ErrExist) {
			return nil, schema.NewError(schema.ErrIOFailed, "fs-tempfile", dir,
				fmt.Sprintf("failed to create temporary file in %q", dir), res.Err)
		}
		lastRes = res
	}

	return nil, schema.NewError(schema.ErrIOFailed, "fs-tempfile", dir,
		fmt.Sprintf("failed to create temporary file in %q after %d attempts", dir, TempFileAttempts), lastRes.Err)
}

// TempFile creates a new, empty file with a unique name inside dir and
// returns its path.
func (f *Handler) TempFile(dir string, prefix string, suffix string) (string, error) {
	file, err := f.CreateTempFile(dir, prefix, suffix)
	if err != nil {
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", schema.NewError(schema.ErrIOFailed, "fs-tempfile", file.Name(),
			fmt.Sprintf("failed to close temporary file %q", file.Name()), err)
	}

	return file.Name(), nil
}

func randomName(prefix string, suffix string) (string, error) {
	buf := make([]byte, 8) //nolint:mnd

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return prefix + hex.EncodeToString(buf) + suffix, nil
}
