package dataflatten

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readText reads file as UTF-8. A UTF-8 byte order mark is dropped, and
// files that open with a UTF-16 one are decoded.
func readText(file string) ([]byte, error) {
	rawdata, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if hasUTF16BOM(rawdata) {
		return decodeUTF16(rawdata)
	}

	return bytes.TrimPrefix(rawdata, utf8BOM), nil
}

func hasUTF16BOM(rawdata []byte) bool {
	return bytes.HasPrefix(rawdata, []byte{0xFF, 0xFE}) || bytes.HasPrefix(rawdata, []byte{0xFE, 0xFF})
}

// decodeUTF16 assumes little endian unless a byte order mark says
// otherwise. Windows tools write it that way.
func decodeUTF16(rawdata []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), rawdata)
	if err != nil {
		return nil, errors.Wrap(err, "decoding utf-16")
	}
	return decoded, nil
}

// decodeLegacyText guesses the encoding of text that is not UTF-8, and
// reports which one it used.
func decodeLegacyText(rawdata []byte) ([]byte, string, error) {
	if hasUTF16BOM(rawdata) {
		decoded, err := decodeUTF16(rawdata)
		return decoded, "utf-16", err
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), rawdata)
	return decoded, "iso-8859-1", err
}
