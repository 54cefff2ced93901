package internal

import "strings"

// WordPlaceholder is the token a context template must contain for a word
// to be substituted into it.
const WordPlaceholder = "{w}"

// ApplyTemplate substitutes word into template wherever the placeholder
// appears. A template without a placeholder (or an empty one) yields the
// raw word. The same rule must be applied when building the cached matrix
// and when embedding per-request words, or their vectors are not comparable.
func ApplyTemplate(template, word string) string {
	if !strings.Contains(template, WordPlaceholder) {
		return word
	}
	return strings.ReplaceAll(template, WordPlaceholder, word)
}
