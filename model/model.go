package model

// Part-of-speech major classes that the vocabulary pipeline branches on.
const (
	POSNoun       = "名詞"
	POSSymbol     = "記号"
	POSAuxSymbol  = "補助記号" // UniDic punctuation
	POSWhitespace = "空白"
)

// POS is the fixed-arity part-of-speech classification of a morpheme.
type POS struct {
	Major string `json:"major"`
	Sub   string `json:"sub,omitempty"`
}

// IsSymbol reports whether the morpheme is punctuation, a symbol or whitespace.
func (p POS) IsSymbol() bool {
	switch p.Major {
	case POSSymbol, POSAuxSymbol, POSWhitespace:
		return true
	}
	return false
}

// IsNoun reports whether the major class is noun.
func (p POS) IsNoun() bool {
	return p.Major == POSNoun
}

// Morpheme represents a morpheme produced by the tokenizer.
type Morpheme struct {
	Surface        string `json:"surface"`
	Reading        string `json:"reading,omitempty"`
	DictionaryForm string `json:"dictionary_form,omitempty"`
	POS            POS    `json:"pos"`
}

// Entry is one row of a deduplicated vocabulary list.
type Entry struct {
	Reading string `json:"reading"`
	Surface string `json:"surface"`
}
