// Package clipboard copies text to and from the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// ReadFromClipboard returns the current clipboard text.
func ReadFromClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.ReadAll()
}
