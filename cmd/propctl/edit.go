package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/go-kit/kit/log/level"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pkg/errors"
)

func (p *propctl) dumpCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "dump",
		ShortUsage: "propctl dump <file>",
		ShortHelp:  "Parse a file and print it back in normalized form",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			return p.write(props, args[0], false)
		},
	}
}

func (p *propctl) mergeCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "merge",
		ShortUsage: "propctl merge <file> <file>...",
		ShortHelp:  "Concatenate the pairs of several files, keeping duplicates",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}

			merged, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			for _, file := range args[1:] {
				props, err := p.load(ctx, file)
				if err != nil {
					return err
				}
				merged.Merge(props)
			}

			return p.write(merged, "", false)
		},
	}
}

func (p *propctl) getCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl get", flag.ContinueOnError)
	flAll := fs.Bool("all", false, "print every value for the key, not just the first")

	return &ffcli.Command{
		Name:       "get",
		ShortUsage: "propctl get [-all] <file> <key>",
		ShortHelp:  "Print the value of a key",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			key := args[1]

			values := props.GetAll(key)
			if len(values) == 0 {
				return errors.Errorf("key %q not found in %s", key, args[0])
			}

			if !*flAll {
				values = values[:1]
			}

			for _, value := range values {
				fmt.Fprintln(p.stdout, value)
			}
			return nil
		},
	}
}

func (p *propctl) setCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl set", flag.ContinueOnError)
	flWrite := fs.Bool("w", false, "write the result back to the file")

	return &ffcli.Command{
		Name:       "set",
		ShortUsage: "propctl set [-w] <file> <key=value>...",
		ShortHelp:  "Replace every pair for a key with a single new one, at the end",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			for _, assignment := range args[1:] {
				key, value, ok := strings.Cut(assignment, "=")
				if !ok {
					return errors.Errorf("expected key=value, got %q", assignment)
				}

				removed := props.Delete(key)
				props.Insert(key, value)

				level.Debug(logger(ctx)).Log("msg", "set key", "key", key, "replaced", removed)
			}

			return p.write(props, args[0], *flWrite)
		},
	}
}

func (p *propctl) deleteCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl delete", flag.ContinueOnError)
	flWrite := fs.Bool("w", false, "write the result back to the file")

	return &ffcli.Command{
		Name:       "delete",
		ShortUsage: "propctl delete [-w] <file> <key>...",
		ShortHelp:  "Remove every pair for the given keys",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[0])
			if err != nil {
				return err
			}

			for _, key := range args[1:] {
				removed := props.Delete(key)
				level.Debug(logger(ctx)).Log("msg", "deleted key", "key", key, "removed", removed)
			}

			return p.write(props, args[0], *flWrite)
		},
	}
}
