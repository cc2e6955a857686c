package dataflatten

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func JsonFile(file string, opts ...FlattenOpts) ([]Row, error) {
	rawdata, err := readText(file)
	if err != nil {
		return nil, err
	}

	// utf-16 saved without a byte order mark
	if !json.Valid(rawdata) {
		if decoded, err := decodeUTF16(rawdata); err == nil && json.Valid(decoded) {
			rawdata = decoded
		}
	}

	return Json(rawdata, opts...)
}

func Json(rawdata []byte, opts ...FlattenOpts) ([]Row, error) {
	var data interface{}

	if err := json.Unmarshal(rawdata, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshalling json")
	}

	return Flatten(data, opts...)
}
