// Package tokenize adapts the kagome morphological analyzer to the
// morpheme model used by the vocabulary pipeline.
//
// Building a kagome tokenizer loads a whole system dictionary, so each
// dictionary is built at most once per process and shared by every caller.
// A kagome tokenizer is read-only after construction and safe for
// concurrent use.
package tokenize

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"jpvocab/model"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jpvocab.tokenize'
func tracer() tracing.Trace {
	return tracing.Select("jpvocab.tokenize")
}

// Analyzer splits text into morphemes.
type Analyzer interface {
	Tokenize(text string) ([]model.Morpheme, error)
}

// Dict names a system dictionary.
type Dict string

const (
	IPA Dict = "ipa"
	Uni Dict = "uni"
)

// Mode names a kagome split granularity.
type Mode string

const (
	// Normal yields the longest units and is the default.
	Normal   Mode = "normal"
	Search   Mode = "search"
	Extended Mode = "extended"
)

var (
	ErrUnknownDict = errors.New("unknown dictionary")
	ErrUnknownMode = errors.New("unknown split mode")
)

var kagomeModes = map[Mode]tokenizer.TokenizeMode{
	Normal:   tokenizer.Normal,
	Search:   tokenizer.Search,
	Extended: tokenizer.Extended,
}

// ParseDict validates a dictionary name. The empty string selects IPA.
func ParseDict(s string) (Dict, error) {
	switch d := Dict(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return IPA, nil
	case IPA, Uni:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDict, s)
}

// ParseMode validates a split mode name. The empty string selects Normal.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return Normal, nil
	}
	if _, ok := kagomeModes[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// lazy holds one shared tokenizer and the way to read a katakana reading
// off its tokens.
type lazy struct {
	once    sync.Once
	load    func() *dict.Dict
	reading func(tokenizer.Token) string
	t       *tokenizer.Tokenizer
	err     error
}

func (l *lazy) get() (*tokenizer.Tokenizer, error) {
	l.once.Do(func() {
		tracer().Infof("building kagome tokenizer")
		l.t, l.err = tokenizer.New(l.load(), tokenizer.OmitBosEos())
		if l.err != nil {
			tracer().Errorf("kagome tokenizer: %v", l.err)
		}
	})
	return l.t, l.err
}

// shared is populated at package init and never written afterwards.
var shared = map[Dict]*lazy{
	IPA: {load: ipa.Dict, reading: ipaReading},
	Uni: {load: uni.Dict, reading: uniReading},
}

// Kagome is an Analyzer backed by a kagome tokenizer.
type Kagome struct {
	t       *tokenizer.Tokenizer
	mode    tokenizer.TokenizeMode
	reading func(tokenizer.Token) string
}

// Shared returns an analyzer over the process-wide tokenizer for d,
// building it on first use.
func Shared(d Dict, m Mode) (*Kagome, error) {
	l, ok := shared[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDict, d)
	}
	km, ok := kagomeModes[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	t, err := l.get()
	if err != nil {
		return nil, fmt.Errorf("initialize %s tokenizer: %w", d, err)
	}
	return &Kagome{t: t, mode: km, reading: l.reading}, nil
}

// Default returns the shared IPA analyzer in Normal mode.
func Default() (*Kagome, error) {
	return Shared(IPA, Normal)
}

// Tokenize analyzes text in the analyzer's mode. kagome itself never
// fails on input, so the error is always nil.
func (k *Kagome) Tokenize(text string) ([]model.Morpheme, error) {
	if text == "" {
		return nil, nil
	}
	return convertKagomeTokens(k.t.Analyze(text, k.mode), k.reading), nil
}

func convertKagomeTokens(ktoks []tokenizer.Token, reading func(tokenizer.Token) string) []model.Morpheme {
	out := make([]model.Morpheme, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		out = append(out, model.Morpheme{
			Surface:        kt.Surface,
			Reading:        reading(kt),
			DictionaryForm: feature(kt.BaseForm()),
			POS:            classify(kt.POS()),
		})
	}
	return out
}

func ipaReading(kt tokenizer.Token) string {
	return feature(kt.Reading())
}

// uniReading picks a reading from UniDic's columns, which kagome does not
// map to Reading(). An uninflected token takes the lexical reading (コウエン
// for 公園). An inflected one takes the pronunciation of what is written
// (イッ for 行っ), since the lexical reading belongs to the lemma (イク).
func uniReading(kt tokenizer.Token) string {
	orth, _ := kt.FeatureAt(uni.Orth)
	base, _ := kt.FeatureAt(uni.OrthBase)
	if orth != "" && orth == base {
		if r := feature(kt.FeatureAt(uni.LForm)); r != "" {
			return r
		}
	}
	return feature(kt.FeatureAt(uni.Pron))
}

// feature drops kagome's "*" placeholder for unset feature columns.
func feature(v string, ok bool) string {
	if !ok || v == "*" {
		return ""
	}
	return v
}

func classify(pos []string) model.POS {
	var p model.POS
	if len(pos) > 0 {
		p.Major = pos[0]
	}
	if len(pos) > 1 && pos[1] != "*" {
		p.Sub = pos[1]
	}
	return p
}
