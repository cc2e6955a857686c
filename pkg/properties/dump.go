package properties

import (
	"io"
	"strings"
)

// String renders the pairs as `key=value` lines in store order.
//
// Nothing is escaped on the way out. A value holding a line break or a
// comment character will not read back the same.
func (p *Properties) String() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	return b.String()
}

// WriteTo writes the same text as String to w.
func (p *Properties) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, pair := range p.pairs {
		n, err := io.WriteString(w, pair.Key+"="+pair.Value+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
