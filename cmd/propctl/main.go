// propctl reads, rewrites and converts .properties files.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/kolide/kit/logutil"
	"github.com/kolide/kit/version"
	"github.com/kolide/propkit/pkg/contexts/ctxlog"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type propctl struct {
	stdout io.Writer
	stdin  io.Reader

	flDebug   *bool
	flVersion *bool
}

func main() {
	p := &propctl{
		stdout: os.Stdout,
		stdin:  os.Stdin,
	}

	root := p.rootCommand()

	if err := root.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logutil.Fatal(logutil.NewCLILogger(true), "msg", "Error parsing flags", "err", err)
	}

	logger := logutil.NewCLILogger(*p.flDebug)
	ctx := ctxlog.NewContext(context.Background(), logger)

	if err := root.Run(ctx); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logutil.Fatal(logger, "err", err)
	}
}

func (p *propctl) rootCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl", flag.ContinueOnError)
	p.flDebug = fs.Bool("debug", false, "use a debug logger")
	p.flVersion = fs.Bool("version", false, "print version and exit")
	_ = fs.String("config", "", "config file, in properties format")

	return &ffcli.Command{
		Name:       "propctl",
		ShortUsage: "propctl [flags] <subcommand> [flags] [args...]",
		ShortHelp:  "Work with .properties files",
		FlagSet:    fs,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("PROPKIT"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(PropertiesConfigParser),
			ff.WithAllowMissingConfigFile(true),
		},
		Subcommands: []*ffcli.Command{
			p.dumpCommand(),
			p.mergeCommand(),
			p.getCommand(),
			p.setCommand(),
			p.deleteCommand(),
			p.flattenCommand(),
			p.exportCommand(),
			p.importCommand(),
			p.snapshotCommand(),
		},
		Exec: func(ctx context.Context, args []string) error {
			if *p.flVersion {
				version.PrintFull()
				return nil
			}
			return flag.ErrHelp
		},
	}
}

func logger(ctx context.Context) log.Logger {
	return ctxlog.FromContext(ctx)
}
