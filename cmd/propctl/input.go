package main

import (
	"context"
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/kolide/propkit/pkg/dataflatten"
	"github.com/kolide/propkit/pkg/properties"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// load reads a properties file, or stdin when file is "-".
func (p *propctl) load(ctx context.Context, file string) (*properties.Properties, error) {
	ctx, span := trace.StartSpan(ctx, "propctl.load")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("file", file))

	if file == "-" {
		return properties.LoadReader(p.stdin)
	}

	props, err := dataflatten.LoadPropertiesFile(file, logger(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", file)
	}

	level.Debug(logger(ctx)).Log("msg", "loaded properties", "file", file, "pairs", props.Len())

	return props, nil
}

// write sends props to stdout, or back to file when inPlace is set.
func (p *propctl) write(props *properties.Properties, file string, inPlace bool) error {
	if !inPlace || file == "-" {
		_, err := props.WriteTo(p.stdout)
		return err
	}

	if err := os.WriteFile(file, []byte(props.String()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", file)
	}
	return nil
}
