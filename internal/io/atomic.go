package io

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/pathing"
	"github.com/desertwitch/atomfs/internal/schema"
)

const (
	// MaxLinkHops is the maximum amount of symbolic links followed when
	// resolving the file to be written.
	MaxLinkHops = 40

	defaultFileMode = 0o666
	defaultDirMode  = 0o777
)

// DumpFile atomically replaces the contents of the file at path. The content
// is written to a temporary file in the same directory, synced and renamed
// onto path, so that readers either see the previous or the new contents.
// Symbolic links are resolved, so that the file they point to is replaced
// instead of the link itself. Missing parent directories are created.
func (i *Handler) DumpFile(path string, content schema.Content) error {
	return i.dumpFile(path, content, 0)
}

func (i *Handler) dumpFile(path string, content schema.Content, hops int) error {
	if i.fsHandler.IsSymlink(path) {
		if hops >= MaxLinkHops {
			return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
				fmt.Sprintf("failed to write file %q: too many levels of symbolic links", path), nil)
		}

		target, err := i.resolveLink(path)
		if err != nil {
			return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
				fmt.Sprintf("failed to write file %q", path), err)
		}

		return i.dumpFile(target, content, hops+1)
	}

	dir := filepath.Dir(path)

	if err := i.fsHandler.Mkdir(defaultDirMode, dir); err != nil {
		return fmt.Errorf("(io-dump) failed to create parent: %w", err)
	}

	var transferComplete bool

	tmpFile, err := i.fsHandler.CreateTempFile(dir, "."+filepath.Base(path)+".", ".atomfs")
	if err != nil {
		return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
			fmt.Sprintf("failed to write file %q", path), err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		tmpFile.Close()

		if !transferComplete {
			i.removeTempFile(tmpPath)
		}
	}()

	if _, err := content.WriteTo(tmpFile); err != nil {
		return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
			fmt.Sprintf("failed to write file %q", path), err)
	}

	if err := tmpFile.Sync(); err != nil {
		return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
			fmt.Sprintf("failed to sync file %q", path), err)
	}

	if err := tmpFile.Close(); err != nil {
		return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
			fmt.Sprintf("failed to write file %q", path), err)
	}

	mode := defaultFileMode &^ i.fsHandler.Umask()
	if info, err := i.osHandler.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	res := capture.Call(func() error {
		return i.osHandler.Chmod(tmpPath, mode)
	})
	if !res.OK() {
		return schema.NewError(schema.ErrWriteFailed, "io-dump", path,
			fmt.Sprintf("failed to set permissions of file %q", path), res.Err)
	}

	if err := i.Rename(tmpPath, path, true); err != nil {
		return fmt.Errorf("(io-dump) failed to replace file: %w", err)
	}

	transferComplete = true

	return nil
}

// resolveLink returns the absolute path a symbolic link points to, relative
// link targets being resolved against the directory of the link.
func (i *Handler) resolveLink(path string) (string, error) {
	target, err := i.osHandler.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read link: %w", err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("failed to get link directory: %w", err)
	}

	resolved, err := pathing.MakeAbsolute(target, base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve link target: %w", err)
	}

	return filepath.FromSlash(resolved), nil
}

// removeTempFile removes a leftover temporary file. Failures are only logged,
// as this happens after an operation has already failed.
func (i *Handler) removeTempFile(path string) {
	if _, err := i.osHandler.Lstat(path); err != nil {
		return
	}

	if err := i.platformHandler.EnsureWritable(path); err != nil {
		slog.Warn("Warning (cleanup): failure making temporary file writable (skipped)", "path", path, "err", err)
	}

	if err := i.osHandler.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Warning (cleanup): failure removing temporary file (skipped)", "path", path, "err", err)
	}
}
