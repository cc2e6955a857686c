package dataflatten

import (
	"os"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

func IniFile(file string, opts ...FlattenOpts) ([]Row, error) {
	rawdata, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Ini(rawdata, opts...)
}

// Ini flattens ini data. Keys outside any section sit at the top level,
// everything else is nested under its section name.
func Ini(rawdata []byte, opts ...FlattenOpts) ([]Row, error) {
	iniFile, err := ini.Load(rawdata)
	if err != nil {
		return nil, errors.Wrap(err, "ini parse")
	}

	data := make(map[string]interface{})
	for _, section := range iniFile.Sections() {
		dest := data
		if section.Name() != ini.DefaultSection {
			sectionData := make(map[string]interface{})
			data[section.Name()] = sectionData
			dest = sectionData
		}

		for _, key := range section.Keys() {
			dest[key.Name()] = key.Value()
		}
	}

	return Flatten(data, opts...)
}
