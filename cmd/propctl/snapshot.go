package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kolide/propkit/pkg/propstore"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

func (p *propctl) snapshotCommand() *ffcli.Command {
	fs := flag.NewFlagSet("propctl snapshot", flag.ContinueOnError)
	flDb := fs.String("db", "propkit.db", "path to the snapshot database")

	withStore := func(ctx context.Context, fn func(*propstore.Store) error) error {
		db, err := bbolt.Open(*flDb, 0600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return errors.Wrapf(err, "opening snapshot database %s", *flDb)
		}
		defer db.Close()

		store, err := propstore.NewStore(logger(ctx), db)
		if err != nil {
			return errors.Wrap(err, "creating snapshot store")
		}

		return fn(store)
	}

	save := &ffcli.Command{
		Name:       "save",
		ShortUsage: "propctl snapshot save <name> <file>",
		ShortHelp:  "Store the parsed pairs of a file under a name",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return flag.ErrHelp
			}

			props, err := p.load(ctx, args[1])
			if err != nil {
				return err
			}

			return withStore(ctx, func(store *propstore.Store) error {
				return store.Save(args[0], props)
			})
		},
	}

	show := &ffcli.Command{
		Name:       "show",
		ShortUsage: "propctl snapshot show <name>",
		ShortHelp:  "Print a stored snapshot",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			return withStore(ctx, func(store *propstore.Store) error {
				props, err := store.Load(args[0])
				if err != nil {
					return err
				}
				return p.write(props, "", false)
			})
		},
	}

	list := &ffcli.Command{
		Name:       "list",
		ShortUsage: "propctl snapshot list",
		ShortHelp:  "List stored snapshots",
		Exec: func(ctx context.Context, args []string) error {
			return withStore(ctx, func(store *propstore.Store) error {
				names, err := store.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(p.stdout, name)
				}
				return nil
			})
		},
	}

	rm := &ffcli.Command{
		Name:       "rm",
		ShortUsage: "propctl snapshot rm <name>...",
		ShortHelp:  "Delete stored snapshots",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}

			return withStore(ctx, func(store *propstore.Store) error {
				return store.Delete(args...)
			})
		},
	}

	return &ffcli.Command{
		Name:        "snapshot",
		ShortUsage:  "propctl snapshot [-db path] <save|show|list|rm> [args...]",
		ShortHelp:   "Keep parsed properties in a local database",
		FlagSet:     fs,
		Subcommands: []*ffcli.Command{save, show, list, rm},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}
}
