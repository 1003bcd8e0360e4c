// Package display hands rendered images to the desktop image viewer.
package display

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Swapped in tests.
var (
	goos    = runtime.GOOS
	getenv  = os.Getenv
	startFn = func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}
)

// Headless reports whether there is no graphical session to show a window
// in. Only X11/Wayland platforms can be detected; macOS and Windows always
// have a desktop.
func Headless() bool {
	switch goos {
	case "darwin", "windows":
		return false
	default:
		return getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == ""
	}
}

// Command returns the viewer launcher for the current platform.
func Command(path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open starts the platform viewer on path without waiting for it to exit.
// It reports shown=false and no error when running headless.
func Open(path string) (shown bool, err error) {
	if Headless() {
		return false, nil
	}
	name, args := Command(path)
	if err := startFn(name, args...); err != nil {
		return false, fmt.Errorf("open %s with %s: %w", path, name, err)
	}
	return true, nil
}
