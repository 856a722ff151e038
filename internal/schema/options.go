package schema

import (
	"io"
	"io/fs"
)

// MirrorOptions is the configuration of a single mirror invocation.
type MirrorOptions struct {
	// OverrideNewer copies files even when the target is not older than the
	// origin.
	OverrideNewer bool

	// CopyInsteadOfLink follows symbolic links of the origin and copies what
	// they point to, instead of recreating the links on the target.
	CopyInsteadOfLink bool

	// DeleteExtraneous removes target entries without a counterpart in the
	// origin before mirroring.
	DeleteExtraneous bool
}

// Walker enumerates a directory tree rooted at root, visiting a directory
// before its children. It follows the contract of [fs.WalkDirFunc], including
// [fs.SkipDir].
type Walker interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// RemoteOpener opens a remote (host-bearing) URI for reading. The returned
// size is the announced length of the resource, or -1 if it is unknown.
type RemoteOpener interface {
	OpenRemote(uri string) (io.ReadCloser, int64, error)
}
