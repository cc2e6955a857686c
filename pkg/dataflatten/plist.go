package dataflatten

import (
	"os"

	"github.com/groob/plist"
	"github.com/pkg/errors"
)

func PlistFile(file string, opts ...FlattenOpts) ([]Row, error) {
	rawdata, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Plist(rawdata, opts...)
}

// Plist flattens xml or binary plists.
func Plist(rawdata []byte, opts ...FlattenOpts) ([]Row, error) {
	var data interface{}

	if err := plist.Unmarshal(rawdata, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshalling plist")
	}

	return Flatten(data, opts...)
}
