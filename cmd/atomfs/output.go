package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// fileInfo is what the info command reports about a single path.
type fileInfo struct {
	Path     string
	Size     int64
	MimeType string
	Checksum string
}

func printDone(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, doneStyle.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, info fileInfo) {
	fmt.Fprintln(w, titleStyle.Render(info.Path))
	fmt.Fprintf(w, "%s %s (%d bytes)\n", labelStyle.Render("size:"), humanize.Bytes(uint64(info.Size)), info.Size) //nolint:gosec
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("mime:"), info.MimeType)

	if info.Checksum != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("blake3:"), info.Checksum)
	}
}
