// Package atomfs is a filesystem mutation layer whose operations stay
// consistent under partial failure.
//
// Content is written atomically through exclusive temporary files that are
// synced and renamed into place, directory trees are parked under a hidden
// name before removal and restored when the removal fails, copies are
// verified before they replace their target, and links fall back to copies
// where the platform requires it. All operations are synchronous and report
// failures as [*Error] values, which match both their kind (such as
// [ErrNotFound]) and the error of the operating system with [errors.Is].
//
//	fsys := atomfs.New(atomfs.WithVerifiedCopies(true))
//
//	if err := fsys.DumpFile("/etc/app/config.json", atomfs.String(`{"debug":true}`)); err != nil {
//		return err
//	}
package atomfs
