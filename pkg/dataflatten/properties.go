package dataflatten

import (
	"bytes"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/propkit/pkg/properties"
	"github.com/pkg/errors"
)

// PropertiesFile flattens a .properties file, see LoadPropertiesFile for
// how the text encoding is handled.
func PropertiesFile(file string, opts ...FlattenOpts) ([]Row, error) {
	fl := newFlattenOpts(opts...)

	props, err := LoadPropertiesFile(file, fl.logger)
	if err != nil {
		return nil, err
	}

	return fl.propertiesRows(props), nil
}

// LoadPropertiesFile reads and parses a .properties file. Files that are not
// UTF-8 are retried as UTF-16 (when they carry a byte order mark) or as
// ISO-8859-1, the historic encoding of the format.
func LoadPropertiesFile(file string, logger log.Logger) (*properties.Properties, error) {
	rawdata, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	rawdata = bytes.TrimPrefix(rawdata, utf8BOM)

	props, err := properties.Load(rawdata)

	var utf8Err *properties.InvalidUTF8Error
	if !errors.As(err, &utf8Err) {
		return props, errors.Wrap(err, "parsing properties")
	}

	decoded, encoding, decodeErr := decodeLegacyText(rawdata)
	if decodeErr != nil {
		return nil, errors.Wrapf(err, "invalid utf-8, and %s decoding failed: %v", encoding, decodeErr)
	}

	if logger != nil {
		level.Debug(logger).Log(
			"msg", "properties file is not utf-8, retrying",
			"file", file,
			"encoding", encoding,
			"line", utf8Err.Line,
		)
	}

	props, err = properties.Load(decoded)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing properties as %s", encoding)
	}

	return props, nil
}

// Properties flattens properties text. Each pair becomes a row, in file
// order, so duplicate keys show up as duplicate rows.
func Properties(rawdata []byte, opts ...FlattenOpts) ([]Row, error) {
	fl := newFlattenOpts(opts...)

	props, err := properties.Load(bytes.TrimPrefix(rawdata, utf8BOM))
	if err != nil {
		return nil, errors.Wrap(err, "parsing properties")
	}

	return fl.propertiesRows(props), nil
}

func (fl *flattenOpts) propertiesRows(props *properties.Properties) []Row {
	rows := make([]Row, 0, props.Len())
	props.Range(func(key, value string) bool {
		path := []string{key}
		if fl.nestedKeysSep != "" {
			path = strings.Split(key, fl.nestedKeysSep)
		}

		fl.appendRow(&rows, path, value)
		return true
	})

	return rows
}

// ToProperties is the reverse trip: it joins each row's path with sep
// and returns the rows as pairs, in row order.
func ToProperties(rows []Row, sep string) *properties.Properties {
	props := properties.New()
	for _, row := range rows {
		pair := row.Pair(sep)
		props.Insert(pair.Key, pair.Value)
	}
	return props
}
