package io

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/zeebo/blake3"
)

const (
	// ParkPrefix prefixes the hidden names directories are moved to before
	// being removed.
	ParkPrefix = ".!"

	parkHashLength = 12
	parkSaltLength = 8
	parkAttempts   = 3
)

// Remove removes files, symbolic links and directory trees, processing the
// given paths in reverse order. Symbolic links are removed, never followed.
// Paths that do not exist are skipped.
//
// A directory given as path is first renamed to a hidden name next to it, so
// that an interrupted removal never leaves a half-removed tree under its
// original name. If the removal of its contents fails, the directory is moved
// back to its original name before the error is returned.
func (i *Handler) Remove(paths ...string) error {
	for idx := len(paths) - 1; idx >= 0; idx-- {
		if err := i.remove(paths[idx], true); err != nil {
			return err
		}
	}

	return nil
}

func (i *Handler) remove(path string, topLevel bool) error {
	info, res := capture.Value(func() (fs.FileInfo, error) {
		return i.osHandler.Lstat(path)
	})
	if !res.OK() {
		if errors.Is(res.Err, fs.ErrNotExist) {
			return nil
		}

		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove %q", path), res.Err)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return i.removeLink(path)

	case info.IsDir() && topLevel:
		return i.removeParked(path)

	case info.IsDir():
		return i.removeDir(path)

	default:
		return i.removeFile(path)
	}
}

func (i *Handler) removeLink(path string) error {
	res := capture.Call(func() error {
		return i.platformHandler.RemoveLink(path)
	})
	if !res.OK() && i.exists(path) {
		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove symlink %q", path), res.Err)
	}

	return nil
}

func (i *Handler) removeFile(path string) error {
	res := capture.Call(func() error {
		return i.osHandler.Remove(path)
	})
	if !res.OK() && (errors.Is(res.Err, fs.ErrPermission) || i.exists(path)) {
		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove file %q", path), res.Err)
	}

	return nil
}

func (i *Handler) removeDir(path string) error {
	entries, res := capture.Value(func() ([]fs.DirEntry, error) {
		return i.osHandler.ReadDir(path)
	})
	if !res.OK() {
		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove directory %q", path), res.Err)
	}

	for _, entry := range entries {
		if err := i.remove(filepath.Join(path, entry.Name()), false); err != nil {
			return err
		}
	}

	res = capture.Call(func() error {
		return i.osHandler.Remove(path)
	})
	if !res.OK() && i.exists(path) {
		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove directory %q", path), res.Err)
	}

	return nil
}

// removeParked moves a directory to a hidden name before removing it, and
// moves it back if its removal fails.
func (i *Handler) removeParked(path string) error {
	origin, parked, err := i.park(path)
	if err != nil {
		slog.Debug("Removing directory in place, it could not be parked", "path", path, "err", err)

		return i.removeDir(path)
	}

	if err := i.removeDir(parked); err != nil {
		if rbErr := i.osHandler.Rename(parked, origin); rbErr != nil {
			slog.Warn("Warning (rollback): failure restoring parked directory (skipped)",
				"path", origin,
				"parked", parked,
				"err", rbErr,
			)
		}

		return schema.NewError(schema.ErrRemovalFailed, "io-remove", path,
			fmt.Sprintf("failed to remove directory %q", path), err)
	}

	return nil
}

// park renames a directory to a hidden, unused name inside the parent of its
// resolved path. It returns the resolved path and the new name.
func (i *Handler) park(path string) (string, string, error) {
	origin, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve path: %w", err)
	}

	parent := filepath.Dir(origin)

	for attempt := 0; attempt < parkAttempts; attempt++ {
		name, err := parkName(origin)
		if err != nil {
			return "", "", err
		}

		parked := filepath.Join(parent, name)

		if _, err := i.osHandler.Lstat(parked); err == nil {
			continue
		}

		if err := i.osHandler.Rename(origin, parked); err != nil {
			return "", "", fmt.Errorf("failed to rename: %w", err)
		}

		return origin, parked, nil
	}

	return "", "", fmt.Errorf("%w: no unused name after %d attempts", fs.ErrExist, parkAttempts)
}

// parkName derives a hidden name from the BLAKE3 digest of a path and a
// random salt.
func parkName(path string) (string, error) {
	salt := make([]byte, parkSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hasher := blake3.New()
	hasher.Write([]byte(path))
	hasher.Write(salt)

	return ParkPrefix + hex.EncodeToString(hasher.Sum(nil))[:parkHashLength], nil
}

// exists reports whether path exists, without following symbolic links.
func (i *Handler) exists(path string) bool {
	_, err := i.osHandler.Lstat(path)

	return err == nil
}
