package io

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Mirror mirrors the directory tree origin to target. Directories are
// created, files copied (see [Handler.Copy]) and symbolic links recreated, or
// followed and copied with [schema.MirrorOptions.CopyInsteadOfLink]. With
// [schema.MirrorOptions.DeleteExtraneous], entries of target without a
// counterpart in origin are removed before mirroring.
//
// A nil walker walks origin in lexical order. The target itself (and anything
// created while mirroring) is never mirrored, so that target can be located
// inside origin.
func (i *Handler) Mirror(origin string, target string, walker schema.Walker, opts schema.MirrorOptions) error {
	origin = trimSeparators(origin)
	target = trimSeparators(target)

	if _, err := i.osHandler.Stat(origin); err != nil {
		return schema.NewError(schema.ErrNotFound, "io-mirror", origin,
			fmt.Sprintf("the origin directory specified %q was not found", origin), err).WithTarget(target)
	}

	if opts.DeleteExtraneous && i.exists(target) {
		if err := i.deleteExtraneous(origin, target); err != nil {
			return fmt.Errorf("(io-mirror) failed to delete extraneous: %w", err)
		}
	}

	if err := i.fsHandler.Mkdir(defaultDirMode, target); err != nil {
		return fmt.Errorf("(io-mirror) failed to create target: %w", err)
	}

	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return schema.NewError(schema.ErrIOFailed, "io-mirror", target,
			fmt.Sprintf("failed to resolve target %q", target), err)
	}

	if walker == nil {
		walker = i.fsHandler.Walker(opts.CopyInsteadOfLink)
	}

	created := make(map[string]struct{})

	err = walker.WalkDir(origin, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return schema.NewError(schema.ErrIOFailed, "io-mirror", path,
				fmt.Sprintf("failed to walk %q", path), err).WithTarget(target)
		}

		if path == origin {
			return nil
		}

		realPath, _ := filepath.EvalSymlinks(path)
		_, isCreated := created[realPath]

		if path == target || realPath == realTarget || isCreated {
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		rel, err := filepath.Rel(origin, path)
		if err != nil {
			return schema.NewError(schema.ErrInvalidArgument, "io-mirror", path,
				fmt.Sprintf("%q is not inside %q", path, origin), err)
		}

		created[filepath.Join(realTarget, rel)] = struct{}{}

		return i.mirrorEntry(path, d, filepath.Join(target, rel), opts)
	})
	if err != nil {
		return fmt.Errorf("(io-mirror) %w", err)
	}

	return nil
}

func (i *Handler) mirrorEntry(path string, d fs.DirEntry, targetPath string, opts schema.MirrorOptions) error {
	if d.Type()&fs.ModeSymlink != 0 && !opts.CopyInsteadOfLink {
		linkTarget, res := capture.Value(func() (string, error) {
			return i.osHandler.Readlink(path)
		})
		if !res.OK() {
			return schema.NewError(schema.ErrLinkFailed, "io-mirror", path,
				fmt.Sprintf("failed to read link %q", path), res.Err)
		}

		return i.Symlink(linkTarget, targetPath, false)
	}

	info, res := capture.Value(func() (fs.FileInfo, error) {
		return i.osHandler.Stat(path)
	})

	switch {
	case res.OK() && info.IsDir():
		return i.fsHandler.Mkdir(defaultDirMode, targetPath)

	case res.OK() && info.Mode().IsRegular():
		return i.Copy(path, targetPath, opts.OverrideNewer)

	default:
		return schema.NewError(schema.ErrUnsupportedType, "io-mirror", path,
			fmt.Sprintf("unable to guess %q file type", path), res.Err).WithTarget(targetPath)
	}
}

// deleteExtraneous removes (contents first) everything from target that
// does not exist at the same relative location inside origin.
func (i *Handler) deleteExtraneous(origin string, target string) error {
	entries, err := i.osHandler.ReadDir(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return schema.NewError(schema.ErrIOFailed, "io-mirror", target,
			fmt.Sprintf("failed to read directory %q", target), err)
	}

	for _, entry := range entries {
		originPath := filepath.Join(origin, entry.Name())
		targetPath := filepath.Join(target, entry.Name())

		if entry.IsDir() {
			if err := i.deleteExtraneous(originPath, targetPath); err != nil {
				return err
			}
		}

		if !i.exists(originPath) {
			if err := i.Remove(targetPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func trimSeparators(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" && path != "" {
		return path[:1]
	}

	return trimmed
}
