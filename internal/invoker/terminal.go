package invoker

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Terminal prints results to Out. With Launch set, links are also handed to
// the platform opener.
type Terminal struct {
	Out    io.Writer
	Launch bool
	// opener is swapped in tests.
	opener func(link string) error
}

func NewTerminal(out io.Writer, launch bool) *Terminal {
	return &Terminal{Out: out, Launch: launch, opener: openInBrowser}
}

func (t *Terminal) Alert(msg string) {
	fmt.Fprintf(t.Out, "! %s\n", msg)
}

func (t *Terminal) ShowInfo(title, thumbnail, duration string) {
	fmt.Fprintf(t.Out, "Title:     %s\n", title)
	if thumbnail != "" {
		fmt.Fprintf(t.Out, "Thumbnail: %s\n", thumbnail)
	}
	if duration != "" {
		fmt.Fprintf(t.Out, "Duration:  %s\n", duration)
	}
}

func (t *Terminal) Open(link string) error {
	fmt.Fprintf(t.Out, "Download:  %s\n", link)
	if !t.Launch {
		return nil
	}
	open := t.opener
	if open == nil {
		open = openInBrowser
	}
	return open(link)
}

func openInBrowser(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", link)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
	return cmd.Start()
}
