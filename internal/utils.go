package internal

import (
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string.
// Letters of any script (umlauts, ß) and digits are kept; everything else
// becomes an underscore so the name works both on disk and in Anki's media folder.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isFilenameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func isFilenameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
