package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/logutil"
	"github.com/kolide/kit/version"
	"github.com/kolide/propkit/pkg/osquery/tables/dataflattentable"
	"github.com/kolide/propkit/pkg/osquery/tables/properties_pairs"
	"github.com/oklog/run"
	osquery "github.com/osquery/osquery-go"
)

const extensionName = "com.kolide.properties_extension"

func main() {
	var (
		flSocketPath = flag.String("socket", "", "")
		flTimeout    = flag.Int("timeout", 2, "")
		flVerbose    = flag.Bool("verbose", false, "")
		flVersion    = flag.Bool("version", false, "Print  version and exit")
		_            = flag.Int("interval", 0, "")
	)
	flag.Parse()

	if *flVersion {
		version.PrintFull()
		os.Exit(0)
	}

	logger := logutil.NewServerLogger(*flVerbose)

	if *flSocketPath == "" {
		logutil.Fatal(logger, "msg", "missing required flag", "flag", "socket")
	}

	timeout := time.Duration(*flTimeout) * time.Second

	// allow for osqueryd to create the socket path
	time.Sleep(2 * time.Second)

	server, err := osquery.NewExtensionManagerServer(
		extensionName,
		*flSocketPath,
		osquery.ServerTimeout(timeout),
	)
	if err != nil {
		level.Debug(logger).Log("err", err, "msg", "creating osquery extension server", "stack", fmt.Sprintf("%+v", err))
		logutil.Fatal(logger, "err", err, "msg", "creating osquery extension server")
	}

	server.RegisterPlugin(tablePlugins(logger)...)

	var runGroup run.Group

	signalCtx, cancelSignals := context.WithCancel(context.Background())
	runGroup.Add(func() error {
		listenSignals(signalCtx, logger)
		return nil
	}, func(error) {
		cancelSignals()
	})

	runGroup.Add(server.Run, func(err error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			level.Info(logger).Log(
				"msg", "shutting down extension server",
				"err", err,
			)
		}
	})

	if err := runGroup.Run(); err != nil {
		level.Debug(logger).Log("err", err, "stack", fmt.Sprintf("%+v", err))
		logutil.Fatal(logger, "err", err)
	}
}

func tablePlugins(logger log.Logger) []osquery.OsqueryPlugin {
	plugins := dataflattentable.AllTablePlugins(logger)
	plugins = append(plugins, properties_pairs.TablePlugin(logger))
	return plugins
}

// listenSignals returns on the first interrupt or term signal, or when
// ctx is done.
func listenSignals(ctx context.Context, logger log.Logger) {
	signalsToHandle := []os.Signal{os.Interrupt, syscall.SIGTERM}
	signals := make(chan os.Signal, len(signalsToHandle))
	signal.Notify(signals, signalsToHandle...)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		level.Debug(logger).Log(
			"msg", "received signal",
			"signal", sig,
		)
	case <-ctx.Done():
	}
}
