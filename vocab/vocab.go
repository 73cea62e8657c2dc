// Package vocab turns normalized Japanese text into a vocabulary list keyed
// by hiragana reading.
//
// Every morpheme is registered under its reading with a canonical surface:
// the dictionary form when that form contains kanji, the written surface
// otherwise. Within one reading kanji spellings win: kana spellings are
// dropped once a kanji spelling is known, and discarded if one arrives later.
// Distinct kanji spellings of one reading (橋, 端) are all kept.
//
// A unit of two or more morphemes that is not made of nouns alone is
// additionally registered as a whole phrase, since verb phrases and clauses
// with particles mean something only as a unit.
package vocab

import (
	"strings"

	"jpvocab/kanji"
	"jpvocab/model"
	"jpvocab/tokenize"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jpvocab.vocab'
func tracer() tracing.Trace {
	return tracing.Select("jpvocab.vocab")
}

// Extractor deduplicates vocabulary using an Analyzer.
type Extractor struct {
	analyzer tokenize.Analyzer
}

// New returns an Extractor over a.
func New(a tokenize.Analyzer) *Extractor {
	return &Extractor{analyzer: a}
}

// Deduplicate runs units through the shared IPA analyzer.
func Deduplicate(units []string) ([]model.Entry, error) {
	a, err := tokenize.Default()
	if err != nil {
		return nil, err
	}
	return New(a).Deduplicate(units)
}

// Deduplicate tokenizes every unit and returns (reading, surface) rows
// sorted by reading. Analyzer errors are returned unchanged with no rows.
func (e *Extractor) Deduplicate(units []string) ([]model.Entry, error) {
	reg := NewRegistry()
	for i, unit := range units {
		if strings.TrimSpace(unit) == "" {
			continue
		}
		morphs, err := e.analyzer.Tokenize(unit)
		if err != nil {
			return nil, err
		}
		n := addUnit(reg, morphs)
		tracer().Debugf("unit %d: %d of %d morphemes registered", i, n, len(morphs))
	}
	entries := reg.Entries()
	tracer().Infof("%d readings, %d entries from %d units", reg.Len(), len(entries), len(units))
	return entries, nil
}

// word is a morpheme that survived filtering.
type word struct {
	reading  string
	surface  string
	original string
	pos      model.POS
}

// addUnit registers the morphemes of one unit, plus the phrase they form, and
// returns how many morphemes survived.
func addUnit(reg *Registry, morphs []model.Morpheme) int {
	words := make([]word, 0, len(morphs))
	for _, m := range morphs {
		if m.POS.IsSymbol() {
			continue
		}
		reading := kanji.Reading(m.Reading)
		if reading == "" {
			continue
		}
		w := word{
			reading:  reading,
			surface:  Canonical(m),
			original: m.Surface,
			pos:      m.POS,
		}
		reg.Register(w.reading, w.surface)
		words = append(words, w)
	}

	if reading, surface, ok := phrase(words); ok {
		reg.Register(reading, surface)
	}
	return len(words)
}

// Canonical returns the dictionary form of m if it contains kanji, and the
// written surface otherwise.
func Canonical(m model.Morpheme) string {
	base := m.DictionaryForm
	if base == "" {
		base = m.Surface
	}
	if kanji.ContainsKanji(base) {
		return base
	}
	return m.Surface
}

// phrase joins words into one entry unless there are fewer than two or all
// of them are nouns. Phrase surfaces use the written forms.
func phrase(words []word) (reading, surface string, ok bool) {
	if len(words) < 2 {
		return "", "", false
	}
	nounsOnly := true
	for _, w := range words {
		if !w.pos.IsNoun() {
			nounsOnly = false
			break
		}
	}
	if nounsOnly {
		return "", "", false
	}
	var r, s strings.Builder
	for _, w := range words {
		r.WriteString(w.reading)
		s.WriteString(w.original)
	}
	return strings.TrimSpace(r.String()), strings.TrimSpace(s.String()), true
}
