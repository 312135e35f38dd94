package category

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text and splits it into word tokens: maximal runs
// of letters, digits, combining marks and underscores.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '_'
}

// countPhrase counts non-overlapping occurrences of phrase in tokens.
func countPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return 0
	}
	n := 0
	for i := 0; i+len(phrase) <= len(tokens); {
		if matchAt(tokens, phrase, i) {
			n++
			i += len(phrase)
			continue
		}
		i++
	}
	return n
}

func matchAt(tokens, phrase []string, i int) bool {
	for j, p := range phrase {
		if tokens[i+j] != p {
			return false
		}
	}
	return true
}
