package platform

import "golang.org/x/sys/unix"

const maxPathLength = unix.PathMax - 2
