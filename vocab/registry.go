package vocab

import (
	"slices"

	"jpvocab/kanji"
	"jpvocab/model"
)

// group is the set of surfaces registered under one reading. A group holds
// kana surfaces only until the first kanji surface arrives; from then on it
// holds kanji surfaces only.
type group struct {
	surfaces []string
	hasKanji bool
}

func (g *group) add(surface string) {
	if slices.Contains(g.surfaces, surface) {
		return
	}
	if kanji.ContainsKanji(surface) {
		if !g.hasKanji {
			g.surfaces = g.surfaces[:0]
			g.hasKanji = true
		}
		g.surfaces = append(g.surfaces, surface)
		return
	}
	if g.hasKanji {
		return
	}
	g.surfaces = append(g.surfaces, surface)
}

// Registry aggregates surfaces by reading.
type Registry struct {
	groups map[string]*group
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*group)}
}

// Register records surface under reading. Empty readings or surfaces are
// ignored.
func (r *Registry) Register(reading, surface string) {
	if reading == "" || surface == "" {
		return
	}
	g, ok := r.groups[reading]
	if !ok {
		g = &group{}
		r.groups[reading] = g
	}
	g.add(surface)
}

// Len returns the number of distinct readings.
func (r *Registry) Len() int {
	return len(r.groups)
}

// Entries flattens the registry into rows ordered by reading (code point
// order), then by first registration within a reading.
func (r *Registry) Entries() []model.Entry {
	readings := make([]string, 0, len(r.groups))
	n := 0
	for reading, g := range r.groups {
		readings = append(readings, reading)
		n += len(g.surfaces)
	}
	// Byte order of UTF-8 strings equals code point order.
	slices.Sort(readings)

	out := make([]model.Entry, 0, n)
	for _, reading := range readings {
		for _, s := range r.groups[reading].surfaces {
			out = append(out, model.Entry{Reading: reading, Surface: s})
		}
	}
	return out
}
