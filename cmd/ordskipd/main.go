// Spins up the ordskip demo server, exposing the ordered set and sorted-set
// containers over the Redis wire protocol.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ordskip/ordskip/pkg/port"
	"github.com/ordskip/ordskip/pkg/utils"
)

var printVersion = flag.Bool("print_version", false, "Print the version and exit.")

func main() {
	flag.Parse()
	utils.InitLogging()

	if *printVersion {
		slog.Info("ordskip build info.", "version", utils.Version, "commit", utils.Commit, "build", utils.BuildTime)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, os.Kill)

	go func() { // Listen for OS interrupts in the background.
		sig := <-signals
		slog.Info("Received termination signal, cancelling server context.", "signal", sig)
		cancel()
	}()

	store := port.NewStore()
	if err := port.RunRedisServer(ctx, store); err != nil {
		slog.Error("ordskip server stopped.", "err", err)
		os.Exit(1)
	}
}
