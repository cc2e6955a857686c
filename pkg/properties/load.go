package properties

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// continuation is a value still being assembled across physical lines.
type continuation struct {
	key   string
	value strings.Builder
}

// Load parses properties text. Parsing stops at the first error, and no
// partial result is returned.
//
// A value whose continuation is still open when the input ends is kept,
// as if the input had one more empty line.
func Load(buf []byte) (*Properties, error) {
	return LoadString(string(buf))
}

// LoadString is Load for text already held in a string. Keys and values
// that need no decoding are substrings of content.
func LoadString(content string) (*Properties, error) {
	props := &Properties{}

	var partial *continuation
	line := 0

	for len(content) > 0 {
		var cur string
		if br := strings.IndexAny(content, "\n\r"); br >= 0 {
			cur, content = content[:br], content[br+1:]
		} else {
			cur, content = content, ""
		}

		line++

		if comment := strings.IndexAny(cur, "#!"); comment >= 0 {
			cur = cur[:comment]
		}

		if partial != nil {
			more := oddBackslashes(cur)
			if more {
				cur = cur[:len(cur)-1]
			}

			ext, err := validText(line, cur)
			if err != nil {
				return nil, err
			}
			partial.value.WriteString(strings.TrimSpace(ext))

			if !more {
				props.pairs = append(props.pairs, Pair{Key: partial.key, Value: partial.value.String()})
				partial = nil
			}
			continue
		}

		if cur == "" {
			continue
		}

		assign := strings.IndexAny(cur, "=:")
		if assign < 0 {
			text, err := validText(line, cur)
			if err != nil {
				return nil, err
			}
			return nil, &MalformedLineError{Line: line, Text: text}
		}

		key, err := validText(line, cur[:assign])
		if err != nil {
			return nil, err
		}
		key = strings.TrimSpace(key)

		raw := cur[assign+1:]

		if oddBackslashes(raw) {
			// trim first, so whitespace before the backslash is kept
			trimmed := strings.TrimSpace(raw)
			value, err := validText(line, trimmed[:len(trimmed)-1])
			if err != nil {
				return nil, err
			}

			partial = &continuation{key: key}
			partial.value.WriteString(value)
			continue
		}

		decoded, ok := decodeEscapes(raw)
		if !ok {
			text, err := validText(line, cur)
			if err != nil {
				return nil, err
			}
			return nil, &InvalidEscapeError{Line: line, Text: text}
		}

		value, err := validText(line, decoded)
		if err != nil {
			return nil, err
		}

		props.pairs = append(props.pairs, Pair{Key: key, Value: strings.TrimSpace(value)})
	}

	if partial != nil {
		props.pairs = append(props.pairs, Pair{Key: partial.key, Value: partial.value.String()})
	}

	return props, nil
}

// LoadReader reads r to the end and parses the result.
func LoadReader(r io.Reader) (*Properties, error) {
	rawdata, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading properties")
	}

	return Load(rawdata)
}

// LoadFile reads and parses the named file. Parse errors are returned
// as-is so callers can match them with errors.As.
func LoadFile(file string) (*Properties, error) {
	rawdata, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading properties file %s", file)
	}

	return Load(rawdata)
}

// oddBackslashes reports whether s ends in an odd run of backslashes,
// meaning the last one escapes the line break.
func oddBackslashes(s string) bool {
	count := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		count++
	}

	return count&1 == 1
}
