package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRemove_Success tests removing a tree with files, directories and a
// link, without following the link.
func TestRemove_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	outside := filepath.Join(dir, "outside", "keep")

	writeTestFile(t, filepath.Join(root, "a", "b", "file"), "x")
	writeTestFile(t, filepath.Join(root, "file"), "x")
	writeTestFile(t, outside, "keep")
	require.NoError(t, os.Symlink(filepath.Dir(outside), filepath.Join(root, "link")))

	require.NoError(t, h.Remove(root), "no error should occur")

	assert.NoDirExists(t, root)
	assert.FileExists(t, outside, "link target should not be removed")
	requireNoLeftovers(t, dir)
}

// TestRemove_Success_Idempotent tests that removing again (and removing
// missing paths) succeeds.
func TestRemove_Success_Idempotent(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	file := filepath.Join(dir, "file")

	writeTestFile(t, filepath.Join(root, "file"), "x")
	writeTestFile(t, file, "x")

	require.NoError(t, h.Remove(root, file))
	require.NoError(t, h.Remove(root, file), "second removal should succeed")
	require.NoError(t, h.Remove(filepath.Join(dir, "never-existed")))

	assert.NoDirExists(t, root)
	assert.NoFileExists(t, file)
}

// TestRemove_Success_Link tests removing a link to a directory.
func TestRemove_Success_Link(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")

	writeTestFile(t, filepath.Join(target, "file"), "x")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, h.Remove(link))

	_, err := os.Lstat(link)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.FileExists(t, filepath.Join(target, "file"))
}

// TestRemove_Success_ReverseOrder tests that paths are processed in reverse
// order.
func TestRemove_Success_ReverseOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var removed []string

	osProv := &hookedOS{}
	osProv.remove = func(name string) error {
		mu.Lock()
		removed = append(removed, filepath.Base(name))
		mu.Unlock()

		return osProv.OS.Remove(name)
	}

	h := newTestHandler(t, osProv, nil, Options{})
	dir := t.TempDir()

	for _, name := range []string{"first", "second", "third"} {
		writeTestFile(t, filepath.Join(dir, name), "x")
	}

	require.NoError(t, h.Remove(filepath.Join(dir, "first"), filepath.Join(dir, "second"), filepath.Join(dir, "third")))

	assert.Equal(t, []string{"third", "second", "first"}, removed)
}

// TestRemove_Success_ParkFailure tests removing a directory in place when it
// cannot be parked.
func TestRemove_Success_ParkFailure(t *testing.T) {
	t.Parallel()

	osProv := &hookedOS{
		rename: func(oldpath, newpath string) error {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrPermission}
		},
	}
	h := newTestHandler(t, osProv, nil, Options{})
	dir := t.TempDir()
	root := filepath.Join(dir, "root")

	writeTestFile(t, filepath.Join(root, "a", "file"), "x")

	require.NoError(t, h.Remove(root))

	assert.NoDirExists(t, root)
	requireNoLeftovers(t, dir)
}

// TestRemove_Fail_Rollback tests that a failure inside a directory restores
// the directory under its original name.
func TestRemove_Fail_Rollback(t *testing.T) {
	t.Parallel()

	osProv := &hookedOS{}
	osProv.remove = func(name string) error {
		if filepath.Base(name) == "locked" {
			return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
		}

		return osProv.OS.Remove(name)
	}

	h := newTestHandler(t, osProv, nil, Options{})
	dir := t.TempDir()
	root := filepath.Join(dir, "root")

	writeTestFile(t, filepath.Join(root, "keep", "locked"), "x")
	writeTestFile(t, filepath.Join(root, "other"), "x")

	err := h.Remove(root)
	require.ErrorIs(t, err, schema.ErrRemovalFailed, "removal should fail")
	require.ErrorIs(t, err, fs.ErrPermission, "cause should be kept")

	var sErr *schema.Error
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, root, sErr.Path, "error should name the original path")

	assert.FileExists(t, filepath.Join(root, "keep", "locked"), "directory should be restored")
	requireNoLeftovers(t, dir)
}

// TestRemove_Fail_File tests a file that cannot be removed.
func TestRemove_Fail_File(t *testing.T) {
	t.Parallel()

	osProv := &hookedOS{
		remove: func(name string) error {
			return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
		},
	}
	h := newTestHandler(t, osProv, nil, Options{})
	file := filepath.Join(t.TempDir(), "file")

	writeTestFile(t, file, "x")

	err := h.Remove(file)
	require.ErrorIs(t, err, schema.ErrRemovalFailed)
	assert.FileExists(t, file)
}

// TestParkName_Success tests the shape of parked names.
func TestParkName_Success(t *testing.T) {
	t.Parallel()

	first, err := parkName("/some/dir")
	require.NoError(t, err)

	second, err := parkName("/some/dir")
	require.NoError(t, err)

	assert.Len(t, first, len(ParkPrefix)+parkHashLength)
	assert.Regexp(t, `^\.!\w{12}$`, first)
	assert.NotEqual(t, first, second, "salt should make names differ")
}
