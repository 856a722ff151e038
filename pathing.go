package atomfs

import "github.com/desertwitch/atomfs/internal/pathing"

// MakePathAbsolute resolves a relative path against an absolute base path.
// Absolute paths are only normalized.
func MakePathAbsolute(path string, basePath string) (string, error) {
	return pathing.MakeAbsolute(path, basePath) //nolint:wrapcheck
}

// MakePathRelative returns the path of endPath relative to the directory
// startPath, both of which need to be absolute.
func MakePathRelative(endPath string, startPath string) (string, error) {
	return pathing.MakeRelative(endPath, startPath) //nolint:wrapcheck
}

// NormalizePath returns the canonical form of a path, with forward slashes
// and without "." and resolvable ".." segments.
func NormalizePath(path string) string {
	return pathing.Normalize(path)
}

// IsAbsolutePath reports whether a path is absolute, which includes Windows
// drive letters and URIs.
func IsAbsolutePath(path string) bool {
	return pathing.IsAbsolute(path)
}
