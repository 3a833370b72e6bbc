package tools

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername aceita letras, dígitos e @ . + - _
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func ValidateSlug(slug string) bool {
	return slugRe.MatchString(slug)
}
