// Package schema provides the principal schematics for all other packages. It
// defines the error kinds, content and option structures and provides the
// implementation wrapping the portable operating system calls. The package
// serves as a foundational layer for filesystem mutations throughout the
// codebase.
package schema
