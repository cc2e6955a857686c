// Package properties reads and writes the line oriented key/value text
// format used by Java style .properties files.
//
// A Properties is an ordered list of pairs. Order is the order pairs were
// parsed or inserted, and duplicate keys are kept. Lookups are linear
// scans, which is fine at configuration file sizes.
//
// A Properties is not safe for concurrent mutation.
package properties

import (
	"fmt"
	"strings"
)

// Pair is a single key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Properties is an ordered, duplicate permitting list of pairs. The zero
// value is an empty, usable collection.
type Properties struct {
	pairs []Pair
}

func New() *Properties {
	return &Properties{}
}

// FromPairs builds a Properties holding pairs, in order.
func FromPairs(pairs ...Pair) *Properties {
	p := &Properties{pairs: make([]Pair, 0, len(pairs))}
	for _, pair := range pairs {
		p.Insert(pair.Key, pair.Value)
	}
	return p
}

// Len returns how many pairs there are.
func (p *Properties) Len() int {
	return len(p.pairs)
}

func (p *Properties) IsEmpty() bool {
	return len(p.pairs) == 0
}

// Get returns the value of the first pair with key.
func (p *Properties) Get(key string) (string, bool) {
	for _, pair := range p.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair with key, in store order.
func (p *Properties) GetAll(key string) []string {
	var values []string
	for _, pair := range p.pairs {
		if pair.Key == key {
			values = append(values, pair.Value)
		}
	}
	return values
}

// MustGet is Get for call sites where the key is known to be present. It
// panics if there is no pair with key.
func (p *Properties) MustGet(key string) string {
	value, ok := p.Get(key)
	if !ok {
		panic(fmt.Sprintf("properties: no value for key %q", key))
	}
	return value
}

// Insert appends a pair. The strings are copied, so the stored pair does
// not keep a larger backing buffer alive.
func (p *Properties) Insert(key, value string) {
	p.pairs = append(p.pairs, Pair{Key: strings.Clone(key), Value: strings.Clone(value)})
}

// InsertBorrowed appends a pair holding key and value as given. Use it for
// substrings of text that outlives the Properties anyway, such as the
// input to LoadString.
func (p *Properties) InsertBorrowed(key, value string) {
	p.pairs = append(p.pairs, Pair{Key: key, Value: value})
}

// Delete removes every pair with key and returns how many were removed.
func (p *Properties) Delete(key string) int {
	kept := p.pairs[:0]
	for _, pair := range p.pairs {
		if pair.Key != key {
			kept = append(kept, pair)
		}
	}

	removed := len(p.pairs) - len(kept)

	// clear the tail so dropped strings can be collected
	for i := len(kept); i < len(p.pairs); i++ {
		p.pairs[i] = Pair{}
	}
	p.pairs = kept

	return removed
}

// Merge appends the pairs of other after the existing ones. Nothing is
// deduplicated.
func (p *Properties) Merge(other *Properties) {
	if other == nil {
		return
	}
	p.pairs = append(p.pairs, other.pairs...)
}
