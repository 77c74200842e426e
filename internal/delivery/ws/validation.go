package ws

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

func sanitize(s string, maxRunes int) string {
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = controlCharRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxRunes {
		runes := []rune(s)
		s = strings.TrimSpace(string(runes[:maxRunes]))
	}
	return s
}

// SanitizeName cleans a player-supplied display name. An empty result is
// fine, the engine assigns a seat-numbered fallback.
func SanitizeName(name string) string {
	return sanitize(name, domain.MaxNameLength)
}

// SanitizeChat cleans a chat line
func SanitizeChat(text string) string {
	return sanitize(text, domain.MaxChatLength)
}
