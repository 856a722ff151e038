package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertwitch/atomfs/internal/filesystem"
	"github.com/desertwitch/atomfs/internal/platform"
	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRemoteOpener is a [schema.RemoteOpener] mock.
type mockRemoteOpener struct {
	mock.Mock
}

func (m *mockRemoteOpener) OpenRemote(uri string) (io.ReadCloser, int64, error) {
	args := m.Called(uri)

	rc, _ := args.Get(0).(io.ReadCloser)

	return rc, args.Get(1).(int64), args.Error(2) //nolint:forcetypeassert
}

// TestCopy_Success tests copying content, executable bits and the
// modification time of a local file.
func TestCopy_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "nested", "target")
	mtime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)

	writeTestFile(t, origin, "copied content")
	require.NoError(t, os.Chmod(origin, 0o755))
	require.NoError(t, os.Chtimes(origin, mtime, mtime))

	require.NoError(t, h.Copy(origin, target, false), "no error should occur")

	assert.Equal(t, "copied content", readTestFile(t, target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "executable bit should be copied")
	assert.True(t, mtime.Equal(info.ModTime()), "modification time should be copied")

	requireNoLeftovers(t, filepath.Dir(target))
}

// TestCopy_Success_FileURI tests copying from a "file://" origin.
func TestCopy_Success_FileURI(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, origin, "uri content")

	require.NoError(t, h.Copy("file://"+filepath.ToSlash(origin), target, false))

	assert.Equal(t, "uri content", readTestFile(t, target))
}

// TestCopy_Success_SkipNewerTarget tests that a target newer than the origin
// is only replaced when requested.
func TestCopy_Success_SkipNewerTarget(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	writeTestFile(t, origin, "origin")
	writeTestFile(t, target, "target")
	require.NoError(t, os.Chtimes(origin, older, older))
	require.NoError(t, os.Chtimes(target, newer, newer))

	require.NoError(t, h.Copy(origin, target, false))
	assert.Equal(t, "target", readTestFile(t, target), "newer target should be kept")

	require.NoError(t, h.Copy(origin, target, true))
	assert.Equal(t, "origin", readTestFile(t, target), "newer target should be overwritten")
}

// TestCopy_Success_KeepsTargetMode tests that an existing target keeps its
// permissions.
func TestCopy_Success_KeepsTargetMode(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, target, "old")
	require.NoError(t, os.Chmod(target, 0o600))
	require.NoError(t, os.Chtimes(target, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))
	writeTestFile(t, origin, "new")

	require.NoError(t, h.Copy(origin, target, false))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, "new", readTestFile(t, target))
}

// TestCopy_Success_Verified tests a copy with checksum verification.
func TestCopy_Success_Verified(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{VerifyCopies: true})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, origin, strings.Repeat("verified ", 4096))

	require.NoError(t, h.Copy(origin, target, false))
	assert.Equal(t, strings.Repeat("verified ", 4096), readTestFile(t, target))
}

// TestCopy_Fail_HashMismatch tests that a failed verification leaves the
// target untouched.
func TestCopy_Fail_HashMismatch(t *testing.T) {
	t.Parallel()

	fsProv := &checksumFS{
		Handler:  filesystem.NewHandler(&schema.OS{}, platform.Current()),
		checksum: "0000",
	}
	h := NewHandler(fsProv, &schema.OS{}, platform.Current(), Options{VerifyCopies: true})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, origin, "content")

	err := h.Copy(origin, target, false)
	require.ErrorIs(t, err, schema.ErrIncompleteCopy)
	require.ErrorIs(t, err, schema.ErrHashMismatch)

	assert.NoFileExists(t, target)
	requireNoLeftovers(t, dir)
}

// TestCopy_Fail_NotFound tests missing origins and origins that are not
// regular files.
func TestCopy_Fail_NotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()

	err := h.Copy(filepath.Join(dir, "missing"), filepath.Join(dir, "target"), false)
	require.ErrorIs(t, err, schema.ErrNotFound)

	err = h.Copy(dir, filepath.Join(dir, "target"), false)
	require.ErrorIs(t, err, schema.ErrNotFound)
}

// TestCopy_Success_Remote tests copying from a remote origin.
func TestCopy_Success_Remote(t *testing.T) {
	t.Parallel()

	opener := &mockRemoteOpener{}
	opener.On("OpenRemote", "https://example.com/file").
		Return(io.NopCloser(strings.NewReader("remote")), int64(6), nil).Once()

	h := newTestHandler(t, nil, nil, Options{RemoteOpener: opener})
	target := filepath.Join(t.TempDir(), "target")

	require.NoError(t, h.Copy("https://example.com/file", target, false))
	assert.Equal(t, "remote", readTestFile(t, target))

	opener.AssertExpectations(t)
}

// TestCopy_Fail_RemoteIncomplete tests that a remote origin delivering less
// than its announced size leaves no target behind.
func TestCopy_Fail_RemoteIncomplete(t *testing.T) {
	t.Parallel()

	opener := &mockRemoteOpener{}
	opener.On("OpenRemote", "https://example.com/file").
		Return(io.NopCloser(strings.NewReader("short")), int64(100), nil).Once()

	h := newTestHandler(t, nil, nil, Options{RemoteOpener: opener})
	dir := t.TempDir()
	target := filepath.Join(dir, "target")

	err := h.Copy("https://example.com/file", target, false)
	require.ErrorIs(t, err, schema.ErrIncompleteCopy)
	assert.Contains(t, err.Error(), "5 of 100 bytes")

	assert.NoFileExists(t, target)
	requireNoLeftovers(t, dir)

	opener.AssertExpectations(t)
}

// TestCopy_Fail_RemoteWithoutOpener tests refusing remote origins without
// an opener.
func TestCopy_Fail_RemoteWithoutOpener(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})

	err := h.Copy("https://example.com/file", filepath.Join(t.TempDir(), "target"), false)
	require.ErrorIs(t, err, schema.ErrInvalidArgument)
}

// TestRename_Success tests renaming a file.
func TestRename_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, origin, "content")

	require.NoError(t, h.Rename(origin, target, false))

	assert.NoFileExists(t, origin)
	assert.Equal(t, "content", readTestFile(t, target))
}

// TestRename_Fail_Exists tests that an existing target is only replaced
// when requested.
func TestRename_Fail_Exists(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	writeTestFile(t, origin, "origin")
	writeTestFile(t, target, "target")

	err := h.Rename(origin, target, false)
	require.ErrorIs(t, err, schema.ErrAlreadyExists)
	assert.Equal(t, "origin", readTestFile(t, origin), "origin should be untouched")
	assert.Equal(t, "target", readTestFile(t, target), "target should be untouched")

	require.NoError(t, h.Rename(origin, target, true))
	assert.NoFileExists(t, origin)
	assert.Equal(t, "origin", readTestFile(t, target))
}

// TestRename_Success_DirectoryFallback tests mirroring a directory when the
// operating system cannot rename it.
func TestRename_Success_DirectoryFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")
	target := filepath.Join(dir, "target")

	osProv := &hookedOS{}
	osProv.rename = func(oldpath, newpath string) error {
		if oldpath == origin {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrInvalid}
		}

		return osProv.OS.Rename(oldpath, newpath)
	}
	h := newTestHandler(t, osProv, nil, Options{})

	writeTestFile(t, filepath.Join(origin, "a", "file"), "nested")
	writeTestFile(t, filepath.Join(origin, "file"), "top")

	require.NoError(t, h.Rename(origin, target, false))

	assert.NoDirExists(t, origin)
	assert.Equal(t, "nested", readTestFile(t, filepath.Join(target, "a", "file")))
	assert.Equal(t, "top", readTestFile(t, filepath.Join(target, "file")))
}

// TestRename_Fail_File tests a file that cannot be renamed.
func TestRename_Fail_File(t *testing.T) {
	t.Parallel()

	osProv := &hookedOS{
		rename: func(oldpath, newpath string) error {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrPermission}
		},
	}
	h := newTestHandler(t, osProv, nil, Options{})
	dir := t.TempDir()
	origin := filepath.Join(dir, "origin")

	writeTestFile(t, origin, "content")

	err := h.Rename(origin, filepath.Join(dir, "target"), false)
	require.ErrorIs(t, err, schema.ErrRenameFailed)
	require.ErrorIs(t, err, fs.ErrPermission)
	assert.FileExists(t, origin)
}
