package schema

import "strings"

// OneOf accepts text matching one of the options, case-insensitively.
func OneOf(options ...string) func(any) bool {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, found := allowed[strings.ToLower(strings.TrimSpace(s))]
		return found
	}
}

// MinLength accepts text with at least n characters.
func MinLength(n int) func(any) bool {
	return func(value any) bool {
		s, ok := value.(string)
		return ok && len([]rune(strings.TrimSpace(s))) >= n
	}
}
