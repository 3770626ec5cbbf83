package ai

import (
	"strings"
	"unicode"
)

// StripCodeFence removes a surrounding markdown code fence, with or without a
// language tag, and trims leading/trailing whitespace. Text without a fence is
// only trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// drop the language tag on the opening fence line
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			if isFenceTag(strings.TrimSpace(s[:idx])) {
				s = s[idx+1:]
			}
		} else {
			s = strings.TrimSpace(s)
			s = strings.TrimSuffix(s, "```")
			return strings.TrimSpace(s)
		}
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// isFenceTag accepts only a plausible language tag ("python", "js", ...).
// Anything with punctuation is treated as code belonging to the payload.
func isFenceTag(line string) bool {
	if line == "" {
		return true
	}
	if len(line) > 16 {
		return false
	}
	for _, r := range line {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
