package aiclient

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage reduces a BCP 47 tag such as "en-US" to its base
// language. Empty input yields fallback.
func NormalizeLanguage(tag, fallback string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fallback, nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", tag, err)
	}
	base, _ := parsed.Base()
	return base.String(), nil
}
