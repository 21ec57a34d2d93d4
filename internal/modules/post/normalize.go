package post

import (
	"regexp"
	"strings"
)

const excerptLimit = 150

var tagSeparator = regexp.MustCompile(`[\s,]+`)

// NormalizeTags turns a free-text hashtag string into a clean tag list:
// split on whitespace/commas, strip the leading '#', trim, drop empties.
// Order is preserved.
func NormalizeTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := tagSeparator.Split(raw, -1)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(strings.TrimPrefix(p, "#"))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// DeriveExcerpt truncates content to the first 150 characters plus an
// ellipsis. Counting is rune-based so Vietnamese text is not cut mid-letter.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit]) + "..."
}
