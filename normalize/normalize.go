// Package normalize reduces raw document text to whitespace plus the
// Japanese character blocks the vocabulary pipeline understands.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type span struct{ lo, hi rune }

var japanese = []span{
	{0x3000, 0x303F}, // punctuation
	{0x3040, 0x309F}, // hiragana
	{0x30A0, 0x30FF}, // katakana
	{0x31F0, 0x31FF}, // small katakana extensions
	{0x3400, 0x4DBF}, // CJK extension A
	{0x4E00, 0x9FFF}, // CJK unified
	{0xFF01, 0xFF5E}, // full-width ASCII and punctuation
	{0xFF66, 0xFF9F}, // half-width katakana
}

// IsJapanese reports whether r falls in one of the permitted blocks.
func IsJapanese(r rune) bool {
	for _, s := range japanese {
		if r >= s.lo && r <= s.hi {
			return true
		}
	}
	return false
}

// Normalize applies NFKC, keeps whitespace and Japanese characters, drops
// everything else, collapses whitespace runs to one space and trims.
func Normalize(text string) string {
	out := filter(text)
	// Dropping a character can bring a base kana and a combining sound mark
	// together, which NFKC then composes. Repeat until nothing changes.
	for i := 0; i < 4; i++ {
		next := filter(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func filter(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if isSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if !IsJapanese(r) {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSpace adds the ideographic space and the information separators
// U+001C..U+001F, which unicode.IsSpace leaves out, to Unicode white space.
func isSpace(r rune) bool {
	return r == '　' || unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// All normalizes every unit, keeping positions.
func All(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}
