package slug

import (
	"strings"
	"unicode"
)

const maxLength = 200

// Make converts a title to a URL-safe slug: lowercase, whitespace runs become a
// single hyphen, everything outside [a-z0-9-] is dropped, capped at 200 chars.
// The transform is idempotent, so slugs round-trip through it unchanged.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var sb strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
			lastHyphen = false
		}
	}

	result := strings.Trim(sb.String(), "-")
	if len(result) > maxLength {
		result = strings.Trim(result[:maxLength], "-")
	}
	return result
}
