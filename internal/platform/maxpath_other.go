//go:build !linux && !windows

package platform

// PATH_MAX of the BSDs and Darwin.
const maxPathLength = 1024 - 2
