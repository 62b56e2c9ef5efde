package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"crossgate/internal/port"
)

// BrowserNavigator opens URLs in the local system browser. It backs
// the launch CLI; automated callers substitute their own Navigator.
type BrowserNavigator struct{}

// NewBrowserNavigator creates a BrowserNavigator.
func NewBrowserNavigator() *BrowserNavigator {
	return &BrowserNavigator{}
}

// OpenURL opens the URL in a new browser window or tab.
func (n *BrowserNavigator) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, url string) error

// OpenURL calls f.
func (f NavigatorFunc) OpenURL(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Compile-time checks.
var (
	_ port.Navigator = (*BrowserNavigator)(nil)
	_ port.Navigator = (NavigatorFunc)(nil)
)
