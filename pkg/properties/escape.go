package properties

import (
	"strconv"
	"strings"
)

// decodeEscapes expands the backslash escapes in a single-line value. The
// returned string shares memory with raw when there is nothing to decode.
// The result may still be invalid UTF-8 (a lone surrogate decoded from
// \uD800, say), callers validate afterwards.
func decodeEscapes(raw string) (string, bool) {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw, true
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}

		i++
		if i >= len(raw) {
			return "", false
		}

		switch raw[i] {
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case 'u':
			if i+5 > len(raw) {
				return "", false
			}

			code, ok := parseCodeUnit(raw[i+1 : i+5])
			if !ok {
				return "", false
			}

			var buf [3]byte
			n := encodeCodeUnit(code, &buf)
			b.Write(buf[:n])

			i += 4
		default:
			return "", false
		}
	}

	return b.String(), true
}

// parseCodeUnit reads exactly four hex digits, either case.
func parseCodeUnit(digits string) (uint16, bool) {
	for i := 0; i < len(digits); i++ {
		if !isHex(digits[i]) {
			return 0, false
		}
	}

	code, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, false
	}

	return uint16(code), true
}

func isHex(ch byte) bool {
	switch {
	case '0' <= ch && ch <= '9':
		return true
	case 'a' <= ch && ch <= 'f':
		return true
	case 'A' <= ch && ch <= 'F':
		return true
	}
	return false
}

// encodeCodeUnit writes code as 1-3 UTF-8 bytes. Surrogate halves are
// encoded with the 3 byte form and are not paired up.
func encodeCodeUnit(code uint16, out *[3]byte) int {
	switch {
	case code&0xFF80 == 0:
		out[0] = byte(code)
		return 1
	case code&0xF800 == 0:
		out[0] = 0xC0 | byte(code>>6)
		out[1] = 0x80 | byte(code&0x3F)
		return 2
	default:
		out[0] = 0xE0 | byte(code>>12)
		out[1] = 0x80 | byte((code>>6)&0x3F)
		out[2] = 0x80 | byte(code&0x3F)
		return 3
	}
}
