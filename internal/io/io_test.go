package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/atomfs/internal/filesystem"
	"github.com/desertwitch/atomfs/internal/platform"
	"github.com/desertwitch/atomfs/internal/schema"
	"github.com/stretchr/testify/require"
)

// hookedOS is an [osProvider] of the real operating system, where single
// methods can be replaced for injecting failures.
type hookedOS struct {
	schema.OS
	rename  func(oldpath, newpath string) error
	remove  func(name string) error
	symlink func(oldname, newname string) error
}

func (h *hookedOS) Rename(oldpath, newpath string) error {
	if h.rename != nil {
		return h.rename(oldpath, newpath)
	}

	return h.OS.Rename(oldpath, newpath)
}

func (h *hookedOS) Remove(name string) error {
	if h.remove != nil {
		return h.remove(name)
	}

	return h.OS.Remove(name)
}

func (h *hookedOS) Symlink(oldname, newname string) error {
	if h.symlink != nil {
		return h.symlink(oldname, newname)
	}

	return h.OS.Symlink(oldname, newname)
}

// fakePlatform is the platform of the running system, with link behavior
// that can be changed to that of another platform.
type fakePlatform struct {
	platformProvider
	linksAsCopies  bool
	privilegeError bool
}

func (p *fakePlatform) LinksAsCopies() bool {
	return p.linksAsCopies
}

func (p *fakePlatform) IsPrivilegeError(_ error) bool {
	return p.privilegeError
}

// checksumFS is the real filesystem [Handler], returning a fixed checksum.
type checksumFS struct {
	*filesystem.Handler
	checksum string
}

func (c *checksumFS) Checksum(_ string) (string, error) {
	return c.checksum, nil
}

func newTestHandler(t *testing.T, osProv osProvider, platProv platformProvider, opts Options) *Handler {
	t.Helper()

	if osProv == nil {
		osProv = &schema.OS{}
	}
	if platProv == nil {
		platProv = platform.Current()
	}

	return NewHandler(filesystem.NewHandler(&schema.OS{}, platform.Current()), osProv, platProv, opts)
}

func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// requireNoLeftovers fails when dir contains temporary or parked entries.
func requireNoLeftovers(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		require.False(t, strings.HasPrefix(e.Name(), ParkPrefix), "parked entry left behind: %s", e.Name())
		require.False(t, strings.HasSuffix(e.Name(), ".atomfs"), "temporary file left behind: %s", e.Name())
	}
}
