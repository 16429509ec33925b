package request

import "regexp"

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// AutoQuoteKey turns a bare identifier typed just before cursor into a JSON
// key: `name|` becomes `"name": |`. cursor is a byte offset. It reports false,
// leaving text alone, when there is no identifier before the cursor, when the
// identifier is already preceded by a quote, or when a colon follows the cursor.
func AutoQuoteKey(text string, cursor int) (string, int, bool) {
	if cursor < 0 || cursor > len(text) {
		return text, cursor, false
	}

	start := cursor
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	if start == cursor {
		return text, cursor, false
	}

	token := text[start:cursor]
	if !identifierRe.MatchString(token) {
		return text, cursor, false
	}
	if start > 0 && text[start-1] == '"' {
		return text, cursor, false
	}
	if cursor < len(text) && text[cursor] == ':' {
		return text, cursor, false
	}

	replacement := `"` + token + `": `
	return text[:start] + replacement + text[cursor:], start + len(replacement), true
}
