// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"strings"
	"unicode"
)

// minTokenLength drops initials, particles, and OCR fragments.
const minTokenLength = 3

// Tokenize splits text into lowercase normalized tokens. Letters (any
// Latin alphabet including diacritics), digits, and internal hyphens are
// kept; tokens shorter than three runes and pure-numeric tokens are
// dropped. Mixed tokens like "gpt-4" or "utf-8" survive.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if tok := cleanToken(current.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// cleanToken strips stray hyphens and filters short or numeric-only tokens.
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	if len([]rune(token)) < minTokenLength || isNumericOnly(token) {
		return ""
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
