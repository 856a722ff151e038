//go:build !linux && !windows

package platform

import "io/fs"

func procUmask() (fs.FileMode, bool) {
	return 0, false
}
