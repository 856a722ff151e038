package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// Symlink creates a symbolic link at target pointing to origin. An existing
// link at target that already points to origin is kept, any other existing
// link is replaced. Missing parent directories of target are created.
//
// On platforms where links need special privileges, copyOnWindows mirrors
// origin to target instead of linking it.
func (i *Handler) Symlink(origin string, target string, copyOnWindows bool) error {
	if i.platformHandler.LinksAsCopies() {
		origin = i.platformHandler.NativePath(origin)
		target = i.platformHandler.NativePath(target)

		if copyOnWindows {
			return i.Mirror(origin, target, nil, schema.MirrorOptions{})
		}
	}

	if err := i.fsHandler.Mkdir(defaultDirMode, filepath.Dir(target)); err != nil {
		return fmt.Errorf("(io-symlink) failed to create parent: %w", err)
	}

	if i.fsHandler.IsSymlink(target) {
		if current, err := i.osHandler.Readlink(target); err == nil && current == origin {
			return nil
		}

		if err := i.Remove(target); err != nil {
			return fmt.Errorf("(io-symlink) failed to replace link: %w", err)
		}
	}

	res := capture.Call(func() error {
		return i.osHandler.Symlink(origin, target)
	})
	if !res.OK() {
		return i.linkError("symbolic", origin, target, res)
	}

	return nil
}

// Hardlink creates hard links to the regular file origin at all given
// targets. Targets that already are the same file as origin are kept, any
// other existing entry except a directory (including symbolic links, dangling
// or not) is replaced.
func (i *Handler) Hardlink(origin string, targets ...string) error {
	originInfo, res := capture.Value(func() (os.FileInfo, error) {
		return i.osHandler.Stat(origin)
	})
	if !res.OK() {
		return schema.NewError(schema.ErrNotFound, "io-hardlink", origin,
			fmt.Sprintf("origin file %q does not exist", origin), res.Err)
	}

	if !originInfo.Mode().IsRegular() {
		return schema.NewError(schema.ErrNotFound, "io-hardlink", origin,
			fmt.Sprintf("origin %q is not a file", origin), nil)
	}

	for _, target := range targets {
		if targetInfo, err := i.osHandler.Lstat(target); err == nil && !targetInfo.IsDir() {
			if targetInfo.Mode().IsRegular() && os.SameFile(originInfo, targetInfo) {
				continue
			}

			if err := i.Remove(target); err != nil {
				return fmt.Errorf("(io-hardlink) failed to replace target: %w", err)
			}
		}

		res := capture.Call(func() error {
			return i.osHandler.Link(origin, target)
		})
		if !res.OK() {
			return i.linkError("hard", origin, target, res)
		}
	}

	return nil
}

func (i *Handler) linkError(linkType string, origin string, target string, res capture.Result) error {
	if i.platformHandler.IsPrivilegeError(res.Err) {
		return schema.NewError(schema.ErrPrivilegeRequired, "io-link", origin,
			fmt.Sprintf("unable to create %s link due to error code 1314: "+
				"'A required privilege is not held by the client'. "+
				"Do you have the required Administrator-rights?", linkType), res.Err).WithTarget(target)
	}

	return schema.NewError(schema.ErrLinkFailed, "io-link", origin,
		fmt.Sprintf("failed to create %s link from %q to %q", linkType, origin, target), res.Err).WithTarget(target)
}
