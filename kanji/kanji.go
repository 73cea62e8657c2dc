// Package kanji classifies runes by script and maps katakana readings onto hiragana.
package kanji

import "strings"

const (
	kanjiFirst = 0x4E00
	kanjiLast  = 0x9FFF

	katakanaFirst = 0x30A1 // ァ
	katakanaLast  = 0x30F6 // ヶ
	kanaShift     = 0x60
)

// IsKanji reports whether r lies in the CJK Unified Ideographs block.
func IsKanji(r rune) bool {
	return r >= kanjiFirst && r <= kanjiLast
}

// ContainsKanji reports whether s holds at least one ideograph.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// ToHiragana converts katakana in s to hiragana. Runes outside ァ..ヶ,
// including the prolonged sound mark ー, are left as they are.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= katakanaFirst && r <= katakanaLast {
			runes[i] = r - kanaShift
		}
	}
	return string(runes)
}

// Reading turns an analyzer reading into a lookup key: hiragana, trimmed.
func Reading(katakana string) string {
	return strings.TrimSpace(ToHiragana(katakana))
}
