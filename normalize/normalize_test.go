package normalize

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \t\n　", want: ""},
		{name: "ascii dropped", input: "abc カタカナ\n　かな", want: "カタカナ かな"},
		{name: "collapse runs", input: "猫  \t が\n\nいる", want: "猫 が いる"},
		{name: "dropped chars between spaces", input: "東京 abc 大阪", want: "東京 大阪"},
		{name: "half-width katakana widened", input: "ｶﾀｶﾅ", want: "カタカナ"},
		{name: "half-width voiced mark composed", input: "ｶﾞｯｺｳ", want: "ガッコウ"},
		{name: "full-width ascii folds to ascii and drops", input: "ＡＢＣ漢字", want: "漢字"},
		{name: "ideographic space", input: "日本　語", want: "日本 語"},
		{name: "information separators", input: "猫\x1c犬\x1f鳥 魚", want: "猫 犬 鳥 魚"},
		{name: "japanese punctuation kept", input: "「はい」。", want: "「はい」。"},
		{name: "extension A kept", input: "㐀", want: "㐀"},
		{name: "digits dropped", input: "午前8時40分", want: "午前時分"},
		{name: "combining mark joined after drop", input: "かx\u3099", want: "が"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"abc カタカナ\n　かな",
		"秋田県仙北市は市内を流れる入見内川の水位が高まっているため、午前8時40分。",
		"ｶﾞｷﾞｸﾞ　ＡＢＣ！？",
		"か\u309bき\u309c",
		"かx\u3099y\u309a",
		"   混在 text with 漢字 and ｈａｌｆ  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	out := Normalize("Hello, 世界! ＡＢＣ ｱｲｳ ¼ ①")
	for _, r := range out {
		assert.True(t, r == ' ' || IsJapanese(r), "unexpected rune %U in %q", r, out)
	}
	assert.NotContains(t, out, "  ")
}

func TestNormalizeASCIIOnlyIsEmpty(t *testing.T) {
	for _, in := range []string{"abc", "HelloWorld", "x", "ZzZ"} {
		assert.Empty(t, Normalize(in))
	}
}

func TestIsJapanese(t *testing.T) {
	assert.True(t, IsJapanese('あ'))
	assert.True(t, IsJapanese('ア'))
	assert.True(t, IsJapanese('ㇰ'))
	assert.True(t, IsJapanese('漢'))
	assert.True(t, IsJapanese('！'))
	assert.True(t, IsJapanese('ｱ'))
	assert.False(t, IsJapanese('a'))
	assert.False(t, IsJapanese(unicode.ReplacementChar))
}

func TestAll(t *testing.T) {
	assert.Equal(t, []string{"かな", "", "漢字"}, All([]string{" かな ", "abc", "漢字"}))
}
