package main

import (
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/desertwitch/atomfs"
	"github.com/spf13/cobra"
)

func parseMode(s string) (fs.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("(cli-mode) invalid octal mode %q: %w", s, err)
	}

	return fs.FileMode(mode), nil
}

// contentFrom returns the --content flag when it was given and standard input
// otherwise.
func contentFrom(cmd *cobra.Command, content string) atomfs.Content {
	if cmd.Flag("content").Changed {
		return atomfs.String(content)
	}

	return atomfs.Stream(cmd.InOrStdin())
}

func (app *cliApp) newDumpCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Atomically replace a file with the given content or standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.DumpFile(args[0], contentFrom(cmd, content)); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "dumped %s", args[0])

			return nil
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "content to write instead of standard input")

	return cmd
}

func (app *cliApp) newAppendCmd() *cobra.Command {
	var (
		content string
		noLock  bool
	)

	cmd := &cobra.Command{
		Use:   "append <path>",
		Short: "Append the given content or standard input to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lock := app.config.LockAppends && !noLock
			if err := app.fsys.AppendToFile(args[0], contentFrom(cmd, content), lock); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "appended to %s", args[0])

			return nil
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "content to append instead of standard input")
	cmd.Flags().BoolVar(&noLock, "no-lock", false, "do not lock the file while appending")

	return cmd
}

func (app *cliApp) newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.fsys.ReadFile(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}
			_, err = cmd.OutOrStdout().Write(data)

			return err //nolint:wrapcheck
		},
	}
}

func (app *cliApp) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>...",
		Aliases: []string{"remove"},
		Short:   "Remove files, links and directory trees",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Remove(args...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "removed %d path(s)", len(args))

			return nil
		},
	}
}

func (app *cliApp) newCopyCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "cp <origin> <target>",
		Aliases: []string{"copy"},
		Short:   "Copy a file, skipping targets that are not older than their origin",
		Args:    cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Copy(args[0], args[1], force); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "copied %s to %s", args[0], args[1])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "also replace targets that are newer than their origin")

	return cmd
}

func (app *cliApp) newMoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "mv <origin> <target>",
		Aliases: []string{"rename"},
		Short:   "Rename a file or directory",
		Args:    cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Rename(args[0], args[1], force); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "renamed %s to %s", args[0], args[1])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing target")

	return cmd
}

func (app *cliApp) newLinkCmd() *cobra.Command {
	var symbolic bool

	cmd := &cobra.Command{
		Use:   "ln <origin> <target>...",
		Short: "Create hard links (or with --symbolic one symbolic link) to origin",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if symbolic {
				if len(args) != 2 { //nolint:mnd
					return fmt.Errorf("(cli-ln) %w: a symbolic link takes exactly one target", atomfs.ErrInvalidArgument)
				}
				if err := app.fsys.Symlink(args[0], args[1], app.config.CopyOnWindows); err != nil {
					return err //nolint:wrapcheck
				}
			} else if err := app.fsys.Hardlink(args[0], args[1:]...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "linked %d target(s) to %s", len(args)-1, args[0])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&symbolic, "symbolic", "s", false, "create a symbolic link")

	return cmd
}

func (app *cliApp) newMirrorCmd() *cobra.Command {
	var opts atomfs.MirrorOptions

	cmd := &cobra.Command{
		Use:   "mirror <origin> <target>",
		Short: "Mirror a directory tree",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Mirror(args[0], args[1], nil, opts); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "mirrored %s to %s", args[0], args[1])

			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.OverrideNewer, "override", false, "also replace files that are newer than their origin")
	cmd.Flags().BoolVar(&opts.CopyInsteadOfLink, "copy-links", false, "copy the targets of symbolic links instead of the links")
	cmd.Flags().BoolVar(&opts.DeleteExtraneous, "delete", false, "delete files in target that are not in origin")

	return cmd
}

func (app *cliApp) newMkdirCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create directories including their parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perm, err := parseMode(mode)
			if err != nil {
				return err
			}
			if err := app.fsys.Mkdir(perm, args...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "created %d director(ies)", len(args))

			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "0777", "octal mode (masked with the umask)")

	return cmd
}

func (app *cliApp) newTouchCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "touch <path>...",
		Short: "Set the times of files, creating missing ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mtime *time.Time
			if date != "" {
				t, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("(cli-touch) %w: %w", atomfs.ErrInvalidArgument, err)
				}
				mtime = &t
			}
			if err := app.fsys.Touch(mtime, nil, args...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "touched %d path(s)", len(args))

			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "time to set (RFC 3339) instead of the current time")

	return cmd
}

func (app *cliApp) newChmodCmd() *cobra.Command {
	var (
		recursive bool
		umask     string
	)

	cmd := &cobra.Command{
		Use:   "chmod <mode> <path>...",
		Short: "Change the mode of files and directories",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			perm, err := parseMode(args[0])
			if err != nil {
				return err
			}
			mask, err := parseMode(umask)
			if err != nil {
				return err
			}
			if err := app.fsys.Chmod(perm, mask, recursive, args[1:]...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "changed mode of %d path(s) to %04o", len(args)-1, perm&^mask)

			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "R", false, "descend into directories")
	cmd.Flags().StringVar(&umask, "umask", "0000", "octal mask applied to the mode")

	return cmd
}

func (app *cliApp) newChownCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "chown <owner> <path>...",
		Short: "Change the owning user of files and directories",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Chown(args[0], recursive, args[1:]...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "changed owner of %d path(s) to %s", len(args)-1, args[0])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "R", false, "descend into directories")

	return cmd
}

func (app *cliApp) newChgrpCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "chgrp <group> <path>...",
		Short: "Change the owning group of files and directories",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fsys.Chgrp(args[0], recursive, args[1:]...); err != nil {
				return err //nolint:wrapcheck
			}
			printDone(cmd.OutOrStdout(), "changed group of %d path(s) to %s", len(args)-1, args[0])

			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "R", false, "descend into directories")

	return cmd
}

func (app *cliApp) newReadlinkCmd() *cobra.Command {
	var canonicalize bool

	cmd := &cobra.Command{
		Use:   "readlink <path>",
		Short: "Print the target of a symbolic link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := app.fsys.Readlink(args[0], canonicalize)
			if err != nil {
				return err //nolint:wrapcheck
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)

			return nil
		},
	}
	cmd.Flags().BoolVarP(&canonicalize, "canonicalize", "f", false, "resolve all links and print an absolute path")

	return cmd
}

func (app *cliApp) newMktempCmd() *cobra.Command {
	var prefix, suffix string

	cmd := &cobra.Command{
		Use:   "mktemp <dir>",
		Short: "Create an empty file with a unique name and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.fsys.TempFile(args[0], prefix, suffix)
			if err != nil {
				return err //nolint:wrapcheck
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "tmp", "prefix of the file name")
	cmd.Flags().StringVar(&suffix, "suffix", "", "suffix of the file name")

	return cmd
}

func (app *cliApp) newInfoCmd() *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:   "info <path>...",
		Short: "Print size and mime type of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				info, err := app.info(path, checksum)
				if err != nil {
					return err
				}
				printInfo(cmd.OutOrStdout(), info)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&checksum, "checksum", false, "also print the BLAKE3 checksum")

	return cmd
}

func (app *cliApp) info(path string, checksum bool) (fileInfo, error) {
	info := fileInfo{Path: path}

	exists, err := app.fsys.Exists(path)
	if err != nil {
		return info, err //nolint:wrapcheck
	}
	if !exists {
		return info, fmt.Errorf("(cli-info) %w: %s", atomfs.ErrNotFound, path)
	}

	if info.Size, err = app.fsys.Size(path); err != nil {
		return info, err //nolint:wrapcheck
	}

	if info.MimeType, err = app.fsys.MimeType(path); err != nil {
		return info, err //nolint:wrapcheck
	}

	if checksum {
		if info.Checksum, err = app.fsys.Checksum(path); err != nil {
			return info, err //nolint:wrapcheck
		}
	}

	return info, nil
}

func (app *cliApp) newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Compute paths without touching the filesystem",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "normalize <path>",
			Short: "Print the normalized form of a path",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), atomfs.NormalizePath(args[0]))

				return nil
			},
		},
		&cobra.Command{
			Use:   "absolute <path> <base>",
			Short: "Resolve a relative path against an absolute base",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := atomfs.MakePathAbsolute(args[0], args[1])
				if err != nil {
					return err //nolint:wrapcheck
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)

				return nil
			},
		},
		&cobra.Command{
			Use:   "relative <end> <start>",
			Short: "Print the path from start to end",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := atomfs.MakePathRelative(args[0], args[1])
				if err != nil {
					return err //nolint:wrapcheck
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)

				return nil
			},
		},
	)

	return cmd
}
