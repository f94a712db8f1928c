package security

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

const maxTextLength = 2000

// SanitizeText normalizes user-generated text: trims whitespace, strips
// null bytes and all HTML, and caps the length.
func SanitizeText(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = htmlPolicy.Sanitize(input)

	if len(input) > maxTextLength {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxTextLength
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}

	return input
}
