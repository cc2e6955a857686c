package properties

// Keys returns every key in store order, duplicates included.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.pairs))
	for i, pair := range p.pairs {
		keys[i] = pair.Key
	}
	return keys
}

// KeyValues returns the pairs in store order. The slice is a view, it is
// invalidated by the next mutation.
func (p *Properties) KeyValues() []Pair {
	return p.pairs[:len(p.pairs):len(p.pairs)]
}

// Pairs returns a copy of the pairs in store order that the caller owns.
func (p *Properties) Pairs() []Pair {
	pairs := make([]Pair, len(p.pairs))
	copy(pairs, p.pairs)
	return pairs
}

// Range calls fn for each pair in order until fn returns false.
func (p *Properties) Range(fn func(key, value string) bool) {
	for _, pair := range p.pairs {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// RangeMut is Range with access to the stored pair, so values (or keys)
// can be rewritten in place.
func (p *Properties) RangeMut(fn func(pair *Pair) bool) {
	for i := range p.pairs {
		if !fn(&p.pairs[i]) {
			return
		}
	}
}
