package io

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/desertwitch/atomfs/internal/capture"
	"github.com/desertwitch/atomfs/internal/pathing"
	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/zeebo/blake3"
)

// copyOrigin is an opened origin of a copy.
type copyOrigin struct {
	reader  io.ReadCloser
	size    int64
	modTime time.Time
	mode    fs.FileMode
	local   bool
}

// Copy copies the file origin to target. Origins can be local paths, "file://"
// URIs or (when a [schema.RemoteOpener] is configured) remote URIs. Missing
// parent directories of target are created.
//
// Unless overwriteNewerFiles is set, an existing target that is not older than
// a local origin is left untouched. The content is streamed into a temporary
// file next to target, which replaces target only after the amount of bytes
// (and with verification enabled, the checksum) matched the origin. Copies of
// local origins carry over the executable bits and the modification time of
// the origin.
func (i *Handler) Copy(origin string, target string, overwriteNewerFiles bool) error {
	src, err := i.openOrigin(origin)
	if err != nil {
		return err
	}
	defer src.reader.Close()

	dir := filepath.Dir(target)

	if err := i.fsHandler.Mkdir(defaultDirMode, dir); err != nil {
		return fmt.Errorf("(io-copy) failed to create parent: %w", err)
	}

	targetInfo, targetErr := i.osHandler.Stat(target)

	if !overwriteNewerFiles && src.local && targetErr == nil && targetInfo.Mode().IsRegular() {
		if !src.modTime.After(targetInfo.ModTime()) {
			return nil
		}
	}

	mode := defaultFileMode &^ i.fsHandler.Umask()
	if targetErr == nil && targetInfo.Mode().IsRegular() {
		mode = targetInfo.Mode().Perm()
	}
	if src.local {
		mode |= src.mode & 0o111
	}

	if err := i.streamToFile(src, origin, target, mode); err != nil {
		return err
	}

	if src.local {
		res := capture.Call(func() error {
			return i.osHandler.Chtimes(target, src.modTime, src.modTime)
		})
		if !res.OK() {
			return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
				fmt.Sprintf("failed to set modification time of %q", target), res.Err).WithTarget(target)
		}
	}

	return nil
}

func (i *Handler) openOrigin(origin string) (*copyOrigin, error) {
	if pathing.HasRemoteHost(origin) {
		if i.opts.RemoteOpener == nil {
			return nil, schema.NewError(schema.ErrInvalidArgument, "io-copy", origin,
				fmt.Sprintf("failed to copy %q because no opener for remote files is configured", origin), nil)
		}

		reader, size, err := i.opts.RemoteOpener.OpenRemote(origin)
		if err != nil {
			return nil, schema.NewError(schema.ErrIOFailed, "io-copy", origin,
				fmt.Sprintf("failed to copy %q because source file could not be opened for reading", origin), err)
		}

		return &copyOrigin{reader: reader, size: size}, nil
	}

	path := pathing.LocalPath(origin)

	info, res := capture.Value(func() (fs.FileInfo, error) {
		return i.osHandler.Stat(path)
	})
	if !res.OK() || !info.Mode().IsRegular() {
		return nil, schema.NewError(schema.ErrNotFound, "io-copy", origin,
			fmt.Sprintf("failed to copy %q because file does not exist", origin), res.Err)
	}

	file, res := capture.Value(func() (io.ReadCloser, error) {
		return i.osHandler.Open(path)
	})
	if !res.OK() {
		return nil, schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to copy %q because source file could not be opened for reading", origin), res.Err)
	}

	return &copyOrigin{
		reader:  file,
		size:    info.Size(),
		modTime: info.ModTime(),
		mode:    info.Mode().Perm(),
		local:   true,
	}, nil
}

// streamToFile streams an origin into a temporary file next to target and
// renames it onto target once the transfer is verified.
func (i *Handler) streamToFile(src *copyOrigin, origin string, target string, mode fs.FileMode) error {
	var transferComplete bool

	tmpFile, err := i.fsHandler.CreateTempFile(filepath.Dir(target), "."+filepath.Base(target)+".", ".atomfs")
	if err != nil {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to copy %q to %q because target file could not be opened for writing", origin, target), err).WithTarget(target)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		tmpFile.Close()

		if !transferComplete {
			i.removeTempFile(tmpPath)
		}
	}()

	srcHasher := blake3.New()

	written, err := io.Copy(tmpFile, io.TeeReader(src.reader, srcHasher))
	if err != nil {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to copy %q to %q", origin, target), err).WithTarget(target)
	}

	if err := tmpFile.Sync(); err != nil {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to sync %q", target), err).WithTarget(target)
	}

	if err := tmpFile.Close(); err != nil {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to copy %q to %q", origin, target), err).WithTarget(target)
	}

	if src.size >= 0 && written != src.size {
		return schema.NewError(schema.ErrIncompleteCopy, "io-copy", origin,
			fmt.Sprintf("failed to copy the whole content of %q to %q (%d of %d bytes copied)", origin, target, written, src.size), nil).WithTarget(target)
	}

	if i.opts.VerifyCopies {
		srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))

		dstChecksum, err := i.fsHandler.Checksum(tmpPath)
		if err != nil {
			return fmt.Errorf("(io-copy) failed to verify copy: %w", err)
		}

		if srcChecksum != dstChecksum {
			return schema.NewError(schema.ErrIncompleteCopy, "io-copy", origin,
				fmt.Sprintf("failed to copy the whole content of %q to %q", origin, target),
				fmt.Errorf("%w: %s (src) != %s (dst)", schema.ErrHashMismatch, srcChecksum, dstChecksum)).WithTarget(target)
		}
	}

	res := capture.Call(func() error {
		return i.osHandler.Chmod(tmpPath, mode)
	})
	if !res.OK() {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to set permissions of %q", target), res.Err).WithTarget(target)
	}

	res = capture.Call(func() error {
		return i.osHandler.Rename(tmpPath, target)
	})
	if !res.OK() {
		return schema.NewError(schema.ErrIOFailed, "io-copy", origin,
			fmt.Sprintf("failed to copy %q to %q", origin, target), res.Err).WithTarget(target)
	}

	transferComplete = true

	return nil
}

// Rename renames origin to target. Unless overwrite is set, a readable target
// is an error. When the operating system cannot rename a directory (for
// example across devices), its tree is mirrored to target and then removed.
func (i *Handler) Rename(origin string, target string, overwrite bool) error {
	if !overwrite && i.platformHandler.IsReadable(target) {
		return schema.NewError(schema.ErrAlreadyExists, "io-rename", origin,
			fmt.Sprintf("cannot rename because the target %q already exists", target), nil).WithTarget(target)
	}

	res := capture.Call(func() error {
		return i.osHandler.Rename(origin, target)
	})
	if res.OK() {
		return nil
	}

	if info, err := i.osHandler.Stat(origin); err == nil && info.IsDir() {
		if err := i.Mirror(origin, target, nil, schema.MirrorOptions{
			OverrideNewer:    overwrite,
			DeleteExtraneous: overwrite,
		}); err != nil {
			return fmt.Errorf("(io-rename) failed to mirror directory: %w", err)
		}

		return i.Remove(origin)
	}

	return schema.NewError(schema.ErrRenameFailed, "io-rename", origin,
		fmt.Sprintf("cannot rename %q to %q", origin, target), res.Err).WithTarget(target)
}
