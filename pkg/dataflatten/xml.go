package dataflatten

import (
	"github.com/clbanning/mxj"
	"github.com/pkg/errors"
)

// XmlFile flattens an xml document. Elements become path segments and
// attributes show up as `-name` children, the way mxj maps them.
func XmlFile(file string, opts ...FlattenOpts) ([]Row, error) {
	rawdata, err := readText(file)
	if err != nil {
		return nil, err
	}
	return Xml(rawdata, opts...)
}

func Xml(rawdata []byte, opts ...FlattenOpts) ([]Row, error) {
	mv, err := mxj.NewMapXml(rawdata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing xml")
	}

	return Flatten(map[string]interface{}(mv), opts...)
}
