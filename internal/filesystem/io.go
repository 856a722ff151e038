package filesystem

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/zeebo/blake3"
)

const (
	// sniffLength is the amount of bytes considered for content sniffing.
	sniffLength = 512

	defaultMimeType = "application/octet-stream"
)

// ReadFile returns the full contents of the file at path.
func (f *Handler) ReadFile(path string) ([]byte, error) {
	info, res := capture.Value(func() (fs.FileInfo, error) {
		return f.osHandler.Stat(path)
	})
	if !res.OK() {
		return nil, schema.NewError(kindOf(res.Err), "fs-read", path,
			fmt.Sprintf("failed to read file %q", path), res.Err)
	}

	if info.IsDir() {
		return nil, schema.NewError(schema.ErrIOFailed, "fs-read", path,
			fmt.Sprintf("failed to read file %q: file is a directory", path), nil)
	}

	file, res := capture.Value(func() (*os.File, error) {
		return f.osHandler.Open(path)
	})
	if !res.OK() {
		return nil, schema.NewError(kindOf(res.Err), "fs-read", path,
			fmt.Sprintf("failed to read file %q", path), res.Err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, schema.NewError(schema.ErrIOFailed, "fs-read", path,
			fmt.Sprintf("failed to read file %q", path), err)
	}

	return data, nil
}

// AppendToFile appends content to the file at path, creating it (and its
// parent directories) when missing. With lock set, an exclusive advisory lock
// is held on the file for the duration of the write.
func (f *Handler) AppendToFile(path string, content schema.Content, lock bool) error {
	dir := filepath.Dir(path)

	if err := f.Mkdir(0o777, dir); err != nil {
		return fmt.Errorf("(fs-append) failed to create parent: %w", err)
	}

	file, res := capture.Value(func() (*os.File, error) {
		return f.osHandler.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666) //nolint:mnd
	})
	if !res.OK() {
		return schema.NewError(schema.ErrWriteFailed, "fs-append", path,
			fmt.Sprintf("failed to write file %q", path), res.Err)
	}
	defer file.Close()

	var unlock func() error

	if lock {
		var err error

		unlock, err = f.platformHandler.LockExclusive(file)
		if err != nil {
			return schema.NewError(schema.ErrWriteFailed, "fs-append", path,
				fmt.Sprintf("failed to lock file %q", path), err)
		}
	}

	_, writeErr := content.WriteTo(file)

	if unlock != nil {
		if err := unlock(); err != nil {
			slog.Warn("Warning (append): failure releasing file lock (skipped)", "path", path, "err", err)
		}
	}

	if writeErr != nil {
		return schema.NewError(schema.ErrWriteFailed, "fs-append", path,
			fmt.Sprintf("failed to write file %q", path), writeErr)
	}

	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return schema.NewError(schema.ErrWriteFailed, "fs-append", path,
			fmt.Sprintf("failed to write file %q", path), err)
	}

	return nil
}

// Checksum returns the hex encoded BLAKE3 digest of the file at path.
func (f *Handler) Checksum(path string) (string, error) {
	file, res := capture.Value(func() (*os.File, error) {
		return f.osHandler.Open(path)
	})
	if !res.OK() {
		return "", schema.NewError(kindOf(res.Err), "fs-checksum", path,
			fmt.Sprintf("failed to open %q", path), res.Err)
	}
	defer file.Close()

	hasher := blake3.New()

	if _, err := io.Copy(hasher, file); err != nil {
		return "", schema.NewError(schema.ErrIOFailed, "fs-checksum", path,
			fmt.Sprintf("failed to read %q", path), err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// MimeType returns the mime type of the file at path. The type is sniffed
// from the leading content first, with the file extension as fallback for
// content that is not recognized.
func (f *Handler) MimeType(path string) (string, error) {
	info, res := capture.Value(func() (fs.FileInfo, error) {
		return f.osHandler.Stat(path)
	})
	if !res.OK() {
		return "", schema.NewError(kindOf(res.Err), "fs-mime", path,
			fmt.Sprintf("failed to get mime type of %q", path), res.Err)
	}

	switch {
	case info.IsDir():
		return "inode/directory", nil
	case info.Size() == 0:
		return "application/x-empty", nil
	}

	file, res := capture.Value(func() (*os.File, error) {
		return f.osHandler.Open(path)
	})
	if !res.OK() {
		return "", schema.NewError(kindOf(res.Err), "fs-mime", path,
			fmt.Sprintf("failed to get mime type of %q", path), res.Err)
	}
	defer file.Close()

	buf := make([]byte, sniffLength)

	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", schema.NewError(schema.ErrIOFailed, "fs-mime", path,
			fmt.Sprintf("failed to get mime type of %q", path), err)
	}

	if sniffed := http.DetectContentType(buf[:n]); sniffed != defaultMimeType {
		return sniffed, nil
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt, nil
	}

	return "", schema.NewError(schema.ErrNotDetermined, "fs-mime", path,
		fmt.Sprintf("failed to determine mime type of %q", path), nil)
}

// kindOf maps an operating system error to the matching error kind.
func kindOf(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return schema.ErrNotFound
	case errors.Is(err, fs.ErrExist):
		return schema.ErrAlreadyExists
	default:
		return schema.ErrIOFailed
	}
}
