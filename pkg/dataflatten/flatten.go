// Package dataflatten turns structured documents into flat rows of
// (path, value). It is the glue between the various file parsers and the
// osquery tables built on them.
//
// Queries are a list of path segments. A segment of `*` matches anything,
// a segment ending in `*` matches by prefix, and anything else has to
// match exactly. A query shorter than a path matches everything below it.
package dataflatten

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

type flattenOpts struct {
	logger        log.Logger
	query         []string
	includeNils   bool
	nestedKeysSep string
}

type FlattenOpts func(*flattenOpts)

// DataFunc is the shape of the byte oriented flatteners in this package.
type DataFunc func(data []byte, opts ...FlattenOpts) ([]Row, error)

// DataFileFunc is the shape of the file oriented flatteners in this package.
type DataFileFunc func(file string, opts ...FlattenOpts) ([]Row, error)

// IncludeNulls keeps nil leaves as rows with an empty value.
func IncludeNulls() FlattenOpts {
	return func(fl *flattenOpts) {
		fl.includeNils = true
	}
}

// WithLogger sets the logger to use
func WithLogger(logger log.Logger) FlattenOpts {
	if logger == nil {
		return func(_ *flattenOpts) {}
	}

	return func(fl *flattenOpts) {
		fl.logger = logger
	}
}

// WithQuery limits the returned rows to those matching query.
func WithQuery(query []string) FlattenOpts {
	return func(fl *flattenOpts) {
		// A bare "*" is how the tables spell "no query"
		if len(query) == 1 && query[0] == "*" {
			return
		}
		fl.query = query
	}
}

// WithNestedKeys splits flat keys, like the dotted keys of a properties
// file, into path segments on sep.
func WithNestedKeys(sep string) FlattenOpts {
	return func(fl *flattenOpts) {
		fl.nestedKeysSep = sep
	}
}

func newFlattenOpts(opts ...FlattenOpts) *flattenOpts {
	fl := &flattenOpts{
		logger: log.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(fl)
	}

	return fl
}

// Flatten walks a decoded document (the usual map[string]interface{} and
// []interface{} shapes) and returns a row per leaf. Map keys are visited in
// sorted order, so output is stable.
func Flatten(data interface{}, opts ...FlattenOpts) ([]Row, error) {
	fl := newFlattenOpts(opts...)

	rows := []Row{}
	if err := fl.descend(&rows, []string{}, data); err != nil {
		return nil, err
	}

	return rows, nil
}

func (fl *flattenOpts) descend(rows *[]Row, path []string, data interface{}) error {
	if !fl.couldMatch(path) {
		return nil
	}

	switch v := data.(type) {
	case []interface{}:
		for i, e := range v {
			if err := fl.descend(rows, extendPath(path, strconv.Itoa(i)), e); err != nil {
				return errors.Wrap(err, "flattening array")
			}
		}
		return nil

	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if err := fl.descend(rows, extendPath(path, k), v[k]); err != nil {
				return errors.Wrap(err, "flattening map")
			}
		}
		return nil

	case nil:
		if !fl.includeNils {
			level.Debug(fl.logger).Log("msg", "skipping nil value", "path", strings.Join(path, "/"))
			return nil
		}
		fl.appendRow(rows, path, "")
		return nil

	default:
		stringValue, err := stringify(v)
		if err != nil {
			return errors.Wrapf(err, "flattening at path %v", path)
		}
		fl.appendRow(rows, path, stringValue)
		return nil
	}
}

func (fl *flattenOpts) appendRow(rows *[]Row, path []string, value string) {
	if !fl.matches(path) {
		return
	}
	*rows = append(*rows, Row{Path: path, Value: value})
}

// couldMatch reports whether path, or something below it, can still
// match the query.
func (fl *flattenOpts) couldMatch(path []string) bool {
	for i := 0; i < len(path) && i < len(fl.query); i++ {
		if !segmentMatch(fl.query[i], path[i]) {
			return false
		}
	}
	return true
}

func (fl *flattenOpts) matches(path []string) bool {
	if len(fl.query) > len(path) {
		return false
	}
	return fl.couldMatch(path)
}

func segmentMatch(query, segment string) bool {
	switch {
	case query == "*":
		return true
	case strings.HasSuffix(query, "*"):
		return strings.HasPrefix(segment, strings.TrimSuffix(query, "*"))
	default:
		return query == segment
	}
}

// extendPath returns a new slice, so sibling rows never share a backing
// array.
func extendPath(path []string, segment string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, segment)
}

func stringify(data interface{}) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case float64:
		// json returns float64 for ~everything.
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", errors.Errorf("unknown type %T on %v", v, v)
	}
}
