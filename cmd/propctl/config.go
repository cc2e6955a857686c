package main

import (
	"io"

	"github.com/kolide/propkit/pkg/properties"
	"github.com/pkg/errors"
)

// PropertiesConfigParser is an ff.ConfigFileParser for config files
// written as properties, so `debug = true` sets -debug. Later duplicates
// win, the same as repeating a flag.
func PropertiesConfigParser(r io.Reader, set func(name, value string) error) error {
	props, err := properties.LoadReader(r)
	if err != nil {
		return errors.Wrap(err, "parsing config file")
	}

	var setErr error
	props.Range(func(key, value string) bool {
		if err := set(key, value); err != nil {
			setErr = errors.Wrapf(err, "setting %s", key)
			return false
		}
		return true
	})

	return setErr
}
