package kanji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"イリミナイカワ", "いりみないかわ"},
		{"トウキョウタワー", "とうきょうたわー"},
		{"ヴァヶ", "ゔぁゖ"},
		{"ヷ", "ヷ"},
		{"漢字とカナ", "漢字とかな"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHiragana(tt.in), "ToHiragana(%q)", tt.in)
	}
}

func TestReadingTrims(t *testing.T) {
	assert.Equal(t, "ねこ", Reading("  ネコ "))
	assert.Equal(t, "", Reading(" "))
}

func TestContainsKanji(t *testing.T) {
	assert.True(t, ContainsKanji("東京タワー"))
	assert.True(t, ContainsKanji("居る"))
	assert.False(t, ContainsKanji("タワー"))
	assert.False(t, ContainsKanji("かな"))
	// CJK extension A does not count as kanji.
	assert.False(t, ContainsKanji("㐀"))
	assert.False(t, ContainsKanji(""))
}
