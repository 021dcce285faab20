package extraction

import (
	"strings"
	"unicode"
)

// token is a single normalized word with its rune offset in the source text.
type token struct {
	text   string
	offset int
}

// isTokenRune reports whether a rune belongs inside a token. '+' and '#'
// are kept so "c++" and "c#" survive normalization intact.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// tokenize lowercases the text and splits it into tokens on any
// punctuation or whitespace. "Bias-Variance / Tradeoff" becomes
// ["bias", "variance", "tradeoff"].
func tokenize(text string) []token {
	var tokens []token
	var sb strings.Builder
	start := -1

	pos := 0
	for _, r := range text {
		if isTokenRune(r) {
			if start == -1 {
				start = pos
			}
			sb.WriteRune(unicode.ToLower(r))
		} else if start != -1 {
			tokens = append(tokens, token{text: sb.String(), offset: start})
			sb.Reset()
			start = -1
		}
		pos++
	}
	if start != -1 {
		tokens = append(tokens, token{text: sb.String(), offset: start})
	}

	return tokens
}

// normalizeSurface reduces a skill surface form to its canonical token
// sequence joined by single spaces. Used for both taxonomy entries and
// free text so that "CI/CD", "ci-cd" and "ci cd" all compare equal.
func normalizeSurface(surface string) []string {
	tokens := tokenize(surface)
	if len(tokens) == 0 {
		return nil
	}
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.text
	}
	return words
}

// normalizeLine lowercases a line and collapses all separators to single
// spaces, for substring checks against normalized surfaces.
func normalizeLine(line string) string {
	return strings.Join(normalizeSurface(line), " ")
}
