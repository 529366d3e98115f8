// Package browser launches URLs (login, checkout, help) in the user's
// default browser without blocking the terminal UI.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens the given URL in the default browser. The spawned process is
// not waited on.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("no known browser launcher for %s", runtime.GOOS)
	}
}
