// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package csl

import (
	"strings"
	"unicode"
)

// Identifier turns s into an identifier most targets accept: every rune
// other than a letter, digit or underscore becomes an underscore, and a
// leading digit gets an underscore prefix.
func Identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
