// Package platform isolates the behavior that differs between POSIX and
// Windows systems: maximum path lengths, link semantics, permission masks,
// privilege errors and advisory file locking. The implementation is selected
// at build time, [Current] returns the one of the running platform.
package platform

import "sync"

// umaskMu serializes reading the process umask, which can only be read by
// temporarily replacing it.
var umaskMu sync.Mutex //nolint:gochecknoglobals
