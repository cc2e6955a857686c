package dataflatten

import (
	"strings"

	"github.com/kolide/propkit/pkg/properties"
)

// Row is a single flattened value and the path of keys leading to it.
type Row struct {
	Path  []string
	Value string
}

func (r Row) StringPath(sep string) string {
	return strings.Join(r.Path, sep)
}

// ParentKey splits the path into the joined parent and the final key.
func (r Row) ParentKey(sep string) (string, string) {
	if len(r.Path) == 0 {
		return "", ""
	}

	last := len(r.Path) - 1
	return strings.Join(r.Path[:last], sep), r.Path[last]
}

// Pair is the row as a properties pair, keyed by its path joined with sep.
func (r Row) Pair(sep string) properties.Pair {
	return properties.Pair{Key: r.StringPath(sep), Value: r.Value}
}
