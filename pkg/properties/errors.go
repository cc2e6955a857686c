package properties

import (
	"fmt"
	"unicode/utf8"
)

// MalformedLineError is returned when a fresh, non-empty line has no
// `=` or `:` separator.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d is malformed %q", e.Line, e.Text)
}

// InvalidUTF8Error is returned when a slice of the input, cut on raw byte
// boundaries, is not valid UTF-8. Offset is the index of the first invalid
// byte within that slice.
type InvalidUTF8Error struct {
	Line   int
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("line %d is not proper utf-8 (invalid byte at offset %d)", e.Line, e.Offset)
}

// InvalidEscapeError is returned for an unknown or truncated backslash
// escape inside a value.
type InvalidEscapeError struct {
	Line int
	Text string
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("line %d has an invalid escape %q", e.Line, e.Text)
}

// validText returns s unchanged if it is valid UTF-8, or an
// InvalidUTF8Error pointing at the first bad byte.
func validText(line int, s string) (string, error) {
	if utf8.ValidString(s) {
		return s, nil
	}

	offset := 0
	for offset < len(s) {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}

	return "", &InvalidUTF8Error{Line: line, Offset: offset}
}
