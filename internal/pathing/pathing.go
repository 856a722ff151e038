// Package pathing implements the pure path computations of the filesystem
// layer: normalization, absolute path detection and conversions between
// absolute and relative paths. Paths may carry a URI scheme ("gs://bucket")
// or a Windows drive letter ("C:/"), separators are normalized to "/".
package pathing

import (
	"fmt"
	"strings"

	"github.com/desertwitch/atomfs/internal/schema"
)

const schemeSeparator = "://"

// Normalize joins the given parts with "/" and returns the canonical form of
// the resulting path. Repeated separators and "." segments are removed, ".."
// segments are collapsed with their predecessor and whitespace around each
// segment is trimmed. The root ("/", "C:/", "scheme://") is preserved, so a
// rooted path stays rooted. Normalize is idempotent.
func Normalize(parts ...string) string {
	var joined strings.Builder

	started := false
	wasScheme := false

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if !started {
			joined.WriteString(part)
			started = true
			wasScheme = strings.Contains(part, schemeSeparator)

			continue
		}

		if current := joined.String(); !strings.HasSuffix(current, "/") && !strings.HasSuffix(current, `\`) {
			joined.WriteString("/")
		}

		// A scheme-bearing first part may be followed by a rooted hierarchy.
		if wasScheme {
			joined.WriteString(part)
		} else {
			joined.WriteString(strings.TrimLeft(part, `/\`))
		}
		wasScheme = false
	}

	return canonicalize(joined.String())
}

// IsAbsolute reports whether a path starts with a separator, a drive letter
// or a URI scheme.
func IsAbsolute(path string) bool {
	if path == "" {
		return false
	}

	if path[0] == '/' || path[0] == '\\' {
		return true
	}

	if hasDriveLetter(path) {
		return true
	}

	scheme, _ := SchemeAndHierarchy(path)

	return isScheme(scheme)
}

// MakeAbsolute turns a path relative to basePath into an absolute path. An
// already absolute path is returned in its normalized form. The scheme of
// basePath, if any, is kept.
func MakeAbsolute(path string, basePath string) (string, error) {
	if basePath == "" {
		return "", schema.NewError(schema.ErrInvalidArgument, "pathing-abs", basePath,
			"the base path must be a non-empty string", nil)
	}

	if !IsAbsolute(basePath) {
		return "", schema.NewError(schema.ErrInvalidArgument, "pathing-abs", basePath,
			fmt.Sprintf("the base path %q is not an absolute path", basePath), nil)
	}

	if IsAbsolute(path) {
		return canonicalize(path), nil
	}

	prefix := ""
	if scheme, hierarchy := SchemeAndHierarchy(basePath); isScheme(scheme) {
		prefix = scheme + schemeSeparator
		basePath = hierarchy
	}

	return prefix + canonicalize(strings.TrimRight(basePath, `/\`)+"/"+path), nil
}

// MakeRelative returns the path leading from startPath to endPath. Both paths
// need to be absolute. Identical paths yield "./", a non-empty result ends
// with "/". When both paths carry different drive letters no relative path
// exists and the absolute endPath is returned instead.
func MakeRelative(endPath string, startPath string) (string, error) {
	if !IsAbsolute(startPath) {
		return "", schema.NewError(schema.ErrInvalidArgument, "pathing-rel", startPath,
			fmt.Sprintf("the start path %q is not absolute", startPath), nil)
	}

	if !IsAbsolute(endPath) {
		return "", schema.NewError(schema.ErrInvalidArgument, "pathing-rel", endPath,
			fmt.Sprintf("the end path %q is not absolute", endPath), nil)
	}

	endPath = strings.ReplaceAll(endPath, `\`, "/")
	startPath = strings.ReplaceAll(startPath, `\`, "/")

	endPath, endDrive := splitDriveLetter(endPath)
	startPath, startDrive := splitDriveLetter(startPath)

	startSegments := splitSegments(startPath)
	endSegments := splitSegments(endPath)

	if endDrive != "" && startDrive != "" && endDrive != startDrive {
		if len(endSegments) == 0 {
			return endDrive + ":/", nil
		}

		return endDrive + ":/" + strings.Join(endSegments, "/") + "/", nil
	}

	index := 0
	for index < len(startSegments) && index < len(endSegments) && startSegments[index] == endSegments[index] {
		index++
	}

	depth := len(startSegments) - index

	var sb strings.Builder
	sb.WriteString(strings.Repeat("../", depth))

	if remainder := endSegments[index:]; len(remainder) > 0 {
		sb.WriteString(strings.Join(remainder, "/"))
		sb.WriteString("/")
	}

	if sb.Len() == 0 {
		return "./", nil
	}

	return sb.String(), nil
}

// SchemeAndHierarchy splits a path at the first "://". The returned scheme is
// empty when the path carries none.
func SchemeAndHierarchy(path string) (string, string) {
	scheme, hierarchy, found := strings.Cut(path, schemeSeparator)
	if !found {
		return "", path
	}

	return scheme, hierarchy
}

// HasRemoteHost reports whether a path is a URI pointing at a host, such as
// "https://example.com/file". Local "file://" URIs are not remote.
func HasRemoteHost(path string) bool {
	scheme, hierarchy := SchemeAndHierarchy(path)
	if !isScheme(scheme) || strings.EqualFold(scheme, "file") {
		return false
	}

	host, _, _ := strings.Cut(hierarchy, "/")

	return host != ""
}

// LocalPath strips a "file://" scheme from a path. Other paths are returned
// unchanged.
func LocalPath(path string) string {
	scheme, hierarchy := SchemeAndHierarchy(path)
	if strings.EqualFold(scheme, "file") {
		return hierarchy
	}

	return path
}

// canonicalize returns the canonical form of a single path string.
func canonicalize(path string) string {
	if path == "" {
		return ""
	}

	path = strings.ReplaceAll(path, `\`, "/")

	root, rest := splitRoot(path)

	return root + strings.Join(canonicalParts(root, rest), "/")
}

// splitRoot separates the root (scheme, "/" or drive letter) from the rest of
// an already separator-normalized path.
func splitRoot(path string) (string, string) {
	root := ""

	if scheme, hierarchy, found := strings.Cut(path, schemeSeparator); found {
		root = scheme + schemeSeparator
		path = hierarchy
	}

	switch {
	case strings.HasPrefix(path, "/"):
		root += "/"
		path = path[1:]

	case len(path) > 1 && isAlpha(path[0]) && path[1] == ':':
		if len(path) == 2 { //nolint:mnd
			root += path + "/"
			path = ""
		} else if path[2] == '/' {
			root += path[:3]
			path = path[3:]
		}
	}

	return root, path
}

func canonicalParts(root string, rest string) []string {
	canonical := []string{}

	for _, part := range strings.Split(rest, "/") {
		part = strings.TrimSpace(part)

		if part == "" || part == "." {
			continue
		}

		if part == ".." && len(canonical) > 0 && canonical[len(canonical)-1] != ".." {
			canonical = canonical[:len(canonical)-1]

			continue
		}

		// Rooted paths cannot climb above their root.
		if part != ".." || root == "" {
			canonical = append(canonical, part)
		}
	}

	return canonical
}

func splitDriveLetter(path string) (string, string) {
	if len(path) > 2 && isAlpha(path[0]) && path[1] == ':' && path[2] == '/' {
		return path[2:], strings.ToUpper(path[:1])
	}

	return path, ""
}

func splitSegments(path string) []string {
	segments := []string{}

	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		switch segment {
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		case ".", "":
		default:
			segments = append(segments, segment)
		}
	}

	return segments
}

func hasDriveLetter(path string) bool {
	if len(path) < 2 || !isAlpha(path[0]) || path[1] != ':' { //nolint:mnd
		return false
	}

	return len(path) == 2 || path[2] == '/' || path[2] == '\\'
}

// isScheme reports whether s is a URI scheme. Single letters are treated as
// drive letters instead.
func isScheme(s string) bool {
	if len(s) < 2 || !isAlpha(s[0]) { //nolint:mnd
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && (c < '0' || c > '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}

	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
