package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/go-ini/ini"
	"github.com/kolide/propkit/pkg/dataflatten"
	"github.com/kolide/propkit/pkg/properties"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pkg/errors"
)

type flatRow struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

func (p *propctl) flattenCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl flatten", flag.ContinueOnError)
	flQuery := fs.String("query", "*", "slash separated path query, * matches a segment")
	flNested := fs.Bool("nested", false, "treat dots in keys as path separators")

	return &ffcli.Command{
		Name:       "flatten",
		ShortUsage: "propctl flatten [-query q] [-nested] <file>",
		ShortHelp:  "Print the pairs of a file as flattened json rows",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			opts := []dataflatten.FlattenOpts{
				dataflatten.WithLogger(logger(ctx)),
				dataflatten.WithQuery(strings.Split(*flQuery, "/")),
			}
			if *flNested {
				opts = append(opts, dataflatten.WithNestedKeys("."))
			}

			rows, err := dataflatten.PropertiesFile(args[0], opts...)
			if err != nil {
				return errors.Wrapf(err, "flattening %s", args[0])
			}

			out := make([]flatRow, len(rows))
			for i, row := range rows {
				out[i] = flatRow{Path: row.StringPath("/"), Value: row.Value}
			}

			enc := json.NewEncoder(p.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func (p *propctl) exportCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl export", flag.ContinueOnError)
	flFormat := fs.String("format", "json", "output format: json, yaml or ini")

	return &ffcli.Command{
		Name:       "export",
		ShortUsage: "propctl export [-format json|yaml|ini] <file>",
		ShortHelp:  "Convert a properties file to another format",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			return export(p.stdout, props, *flFormat)
		},
	}
}

func (p *propctl) importCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl import", flag.ContinueOnError)
	flFrom := fs.String("from", "json", "input format: json, xml, plist or ini")
	flSep := fs.String("sep", ".", "separator used to join nested keys")

	return &ffcli.Command{
		Name:       "import",
		ShortUsage: "propctl import [-from json|xml|plist|ini] [-sep .] <file>",
		ShortHelp:  "Convert a structured file into properties",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			dataFunc, ok := importers[*flFrom]
			if !ok {
				return errors.Errorf("unknown input format %q", *flFrom)
			}

			rows, err := dataFunc(args[0], dataflatten.WithLogger(logger(ctx)))
			if err != nil {
				return errors.Wrapf(err, "reading %s as %s", args[0], *flFrom)
			}

			return p.write(dataflatten.ToProperties(rows, *flSep), "", false)
		},
	}
}

var importers = map[string]dataflatten.DataFileFunc{
	"json":  dataflatten.JsonFile,
	"xml":   dataflatten.XmlFile,
	"plist": dataflatten.PlistFile,
	"ini":   dataflatten.IniFile,
}

// export writes props in format. Json and yaml map each key to its value,
// or to a list of values when the key repeats.
func export(w io.Writer, props *properties.Properties, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(valuesByKey(props))
	case "yaml":
		out, err := yaml.Marshal(valuesByKey(props))
		if err != nil {
			return errors.Wrap(err, "marshalling yaml")
		}
		_, err = w.Write(out)
		return err
	case "ini":
		iniFile, err := toIni(props)
		if err != nil {
			return err
		}
		_, err = iniFile.WriteTo(w)
		return err
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func valuesByKey(props *properties.Properties) map[string]interface{} {
	out := make(map[string]interface{})
	for _, key := range props.Keys() {
		if _, ok := out[key]; ok {
			continue
		}

		values := props.GetAll(key)
		if len(values) == 1 {
			out[key] = values[0]
		} else {
			out[key] = values
		}
	}
	return out
}

// toIni puts every pair in the default section. Repeated keys become ini
// shadows, so nothing is lost.
func toIni(props *properties.Properties) (*ini.File, error) {
	iniFile := ini.Empty(ini.LoadOptions{AllowShadows: true})
	section := iniFile.Section("")

	for _, pair := range props.KeyValues() {
		if section.HasKey(pair.Key) {
			if err := section.Key(pair.Key).AddShadow(pair.Value); err != nil {
				return nil, errors.Wrapf(err, "adding %s", pair.Key)
			}
			continue
		}

		if _, err := section.NewKey(pair.Key, pair.Value); err != nil {
			return nil, errors.Wrapf(err, "adding %s", pair.Key)
		}
	}

	return iniFile, nil
}
