// Package export turns a recorded exchange into text a user can take
// elsewhere: a curl command, a markdown report or an editor buffer.
package export

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cnharrison/zirest/internal/har"
)

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// GenerateCurlCommand renders the request half of entry as a curl command.
func GenerateCurlCommand(entry har.Entry) string {
	var cmd strings.Builder
	fmt.Fprintf(&cmd, "curl -X %s %s", entry.Request.Method, shellQuote(entry.Request.URL))

	for _, header := range entry.Request.Headers {
		if strings.EqualFold(header.Name, "host") {
			continue
		}
		fmt.Fprintf(&cmd, " -H %s", shellQuote(header.Name+": "+header.Value))
	}

	if entry.Request.PostData != nil && entry.Request.PostData.Text != "" {
		fmt.Fprintf(&cmd, " --data-raw %s", shellQuote(entry.Request.PostData.Text))
	}

	return cmd.String()
}

// EditorCommand returns the editor argv from $VISUAL or $EDITOR, falling
// back to vi. Values such as "code --wait" are split on whitespace.
func EditorCommand() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// OpenInEditor writes content to a temporary file, runs the editor on it
// attached to the terminal and returns what the user saved.
func OpenInEditor(content, extension string) (string, error) {
	tmpFile, err := os.CreateTemp("", "zirest-edit-*."+extension)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	argv := append(EditorCommand(), tmpFile.Name())
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", argv[0], err)
	}

	edited, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(edited), nil
}
