package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// walkProvider defines the operating system methods needed by a [FileWalker].
type walkProvider interface {
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
}

// FileWalker walks a directory tree in lexical order, visiting every
// directory before its contents. Unlike [filepath.WalkDir] it can follow
// symbolic links, in which case every directory is only descended into once
// (by its resolved path) so that link cycles terminate.
type FileWalker struct {
	osHandler   walkProvider
	followLinks bool
}

// Walker returns a pointer to a new [FileWalker] operating on the
// filesystem of the [Handler].
func (f *Handler) Walker(followLinks bool) *FileWalker {
	return &FileWalker{
		osHandler:   f.osHandler,
		followLinks: followLinks,
	}
}

// WalkDir walks the tree rooted at root, calling fn for each file or
// directory (including root). The semantics of [fs.SkipDir] and [fs.SkipAll]
// are the same as with [filepath.WalkDir].
func (w *FileWalker) WalkDir(root string, fn fs.WalkDirFunc) error {
	info, err := w.stat(root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = w.walk(root, fs.FileInfoToDirEntry(info), fn, make(map[string]struct{}))
	}

	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}

	return err
}

func (w *FileWalker) walk(path string, d fs.DirEntry, fn fs.WalkDirFunc, visited map[string]struct{}) error {
	if err := fn(path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			err = nil
		}

		return err
	}

	if w.followLinks {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			if _, seen := visited[resolved]; seen {
				return nil
			}
			visited[resolved] = struct{}{}
		}
	}

	entries, err := w.osHandler.ReadDir(path)
	if err != nil {
		if err := fn(path, d, err); err != nil {
			if errors.Is(err, fs.SkipDir) {
				err = nil
			}

			return err
		}
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())

		if w.followLinks && entry.Type()&fs.ModeSymlink != 0 {
			if info, err := w.osHandler.Stat(child); err == nil {
				entry = fs.FileInfoToDirEntry(info)
			}
		}

		if err := w.walk(child, entry, fn, visited); err != nil {
			if errors.Is(err, fs.SkipDir) {
				break
			}

			return err
		}
	}

	return nil
}

func (w *FileWalker) stat(path string) (fs.FileInfo, error) {
	if w.followLinks {
		return w.osHandler.Stat(path)
	}

	return w.osHandler.Lstat(path)
}
