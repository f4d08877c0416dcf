package errors

import (
	"regexp"
	"strings"
	"unicode"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateBoardTitle checks that a board title is non-empty and free of
// control characters. Length limits belong to the whiteboard service.
func ValidateBoardTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "board title cannot be empty")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "board title contains invalid control characters")
		}
	}
	return nil
}

// ValidateColor checks that s is a six-digit hex color such as "#a6ccf5".
func ValidateColor(s string) error {
	if !hexColorPattern.MatchString(s) {
		return New(ErrCodeInvalidConfig, "invalid color %q (want #rrggbb)", s)
	}
	return nil
}

// ValidateLink checks an optional external reference shown on the board.
// An empty link is valid and means "no link node". Any other string is
// accepted as long as it can sit inside an href attribute.
func ValidateLink(link string) error {
	if strings.ContainsAny(link, `"<>`) {
		return New(ErrCodeInvalidInput, "link contains characters that cannot be embedded: %q", link)
	}
	return nil
}
