package common

import (
	"fmt"
	"regexp"
)

// CompileMatcher compiles a case-insensitive pattern into a predicate.
// An empty pattern matches everything.
func CompileMatcher(pattern string) (func(string) bool, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re.MatchString, nil
}
