// Package naming derives directory names for relay projects.
package naming

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
)

// MaxSourceRunes is how much of the source text contributes to a label.
const MaxSourceRunes = 30

var (
	disallowed = regexp.MustCompile(`[^A-Za-z0-9_\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// FolderLabel turns free text into a lowercase token safe for a directory
// name. It never returns an empty string and is idempotent on its own output.
// Labels are not unique; combine them with a timestamp.
func FolderLabel(text string) string {
	if runes := []rune(text); len(runes) > MaxSourceRunes {
		text = string(runes[:MaxSourceRunes])
	}
	text = strings.TrimSpace(strings.Map(toSpace, text))
	text = disallowed.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, "_")
	text = strings.ToLower(text)
	if text == "" {
		return domain.DefaultLabel
	}
	return text
}

// toSpace folds every Unicode space (NBSP, vertical tab, em space, the
// ASCII separators) onto ' ', since RE2's \s only knows [\t\n\f\r ].
func toSpace(r rune) rune {
	if unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || (r >= 0x1c && r <= 0x1f) {
		return ' '
	}
	return r
}

// FolderName is the project directory name: "<YYYYMMDD_HHMMSS>_<label>".
func FolderName(t time.Time, text string) string {
	return t.Format(domain.FolderTimeLayout) + "_" + FolderLabel(text)
}
