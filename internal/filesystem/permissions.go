package filesystem

import (
	"fmt"
	"io/fs"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/schema"
)

// keepID leaves the user or group of a file unchanged on ownership changes.
const keepID = -1

// Chmod sets mode (masked with umask) on all given paths. With recursive set,
// the contents of directories (but not the targets of symbolic links) are
// changed as well.
func (f *Handler) Chmod(mode fs.FileMode, umask fs.FileMode, recursive bool, paths ...string) error {
	for _, path := range paths {
		res := capture.Call(func() error {
			return f.osHandler.Chmod(path, mode&^umask)
		})
		if !res.OK() {
			return schema.NewError(kindOf(res.Err), "fs-chmod", path,
				fmt.Sprintf("failed to chmod file %q", path), res.Err)
		}

		if recursive {
			children, err := f.walkableChildren(path)
			if err != nil {
				return fmt.Errorf("(fs-chmod) %w", err)
			}

			if err := f.Chmod(mode, umask, true, children...); err != nil {
				return err
			}
		}
	}

	return nil
}

// Chown sets the owning user (a name or a numeric id) of all given paths.
// Symbolic links themselves are changed, not their targets. With recursive
// set, the contents of directories are changed as well.
func (f *Handler) Chown(owner string, recursive bool, paths ...string) error {
	uid, err := lookupUID(owner)
	if err != nil {
		return schema.NewError(schema.ErrInvalidArgument, "fs-chown", owner,
			fmt.Sprintf("failed to resolve user %q", owner), err)
	}

	return f.chownAll(uid, keepID, recursive, "fs-chown", paths...)
}

// Chgrp sets the owning group (a name or a numeric id) of all given paths.
// Symbolic links themselves are changed, not their targets. With recursive
// set, the contents of directories are changed as well.
func (f *Handler) Chgrp(group string, recursive bool, paths ...string) error {
	gid, err := lookupGID(group)
	if err != nil {
		return schema.NewError(schema.ErrInvalidArgument, "fs-chgrp", group,
			fmt.Sprintf("failed to resolve group %q", group), err)
	}

	return f.chownAll(keepID, gid, recursive, "fs-chgrp", paths...)
}

func (f *Handler) chownAll(uid int, gid int, recursive bool, op string, paths ...string) error {
	for _, path := range paths {
		if recursive {
			children, err := f.walkableChildren(path)
			if err != nil {
				return fmt.Errorf("(%s) %w", op, err)
			}

			if err := f.chownAll(uid, gid, true, op, children...); err != nil {
				return err
			}
		}

		res := capture.Call(func() error {
			if f.IsSymlink(path) {
				return f.platformHandler.Lchown(path, uid, gid)
			}

			return f.osHandler.Chown(path, uid, gid)
		})
		if !res.OK() {
			return schema.NewError(kindOf(res.Err), op, path,
				fmt.Sprintf("failed to change ownership of %q", path), res.Err)
		}
	}

	return nil
}

// walkableChildren returns the paths of all entries of a directory that is
// not a symbolic link, or nothing for any other type of file.
func (f *Handler) walkableChildren(path string) ([]string, error) {
	info, err := f.osHandler.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat %q: %w", path, err)
	}

	if !info.IsDir() {
		return nil, nil
	}

	entries, err := f.osHandler.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to readdir %q: %w", path, err)
	}

	children := make([]string, 0, len(entries))
	for _, e := range entries {
		children = append(children, filepath.Join(path, e.Name()))
	}

	return children, nil
}

func lookupUID(owner string) (int, error) {
	if id, err := strconv.Atoi(owner); err == nil {
		return id, nil
	}

	u, err := user.Lookup(owner)
	if err != nil {
		return 0, fmt.Errorf("failed to lookup user: %w", err)
	}

	id, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("failed to parse uid: %w", err)
	}

	return id, nil
}

func lookupGID(group string) (int, error) {
	if id, err := strconv.Atoi(group); err == nil {
		return id, nil
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, fmt.Errorf("failed to lookup group: %w", err)
	}

	id, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, fmt.Errorf("failed to parse gid: %w", err)
	}

	return id, nil
}
