// Package browser opens a card's link in the system browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/Hummusful/kitzer/internal/sanitize"
)

// Open launches the default browser for a link. The link is vetted through
// the same URL safety check the sanitizer applies, so only http/https ever
// reaches the OS.
func Open(rawURL string) error {
	u, ok := sanitize.SafeURL(rawURL)
	if !ok {
		return fmt.Errorf("refusing to open %q: only http/https links are allowed", rawURL)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", u).Start()
	case "windows":
		// rundll32 avoids shell interpretation of the URL.
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", u).Start()
	default:
		return exec.Command("xdg-open", u).Start()
	}
}
