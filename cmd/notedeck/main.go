package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/notedeck/internal/app"
	"github.com/five82/notedeck/internal/update"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override notedeck config path (optional)")
	server := flag.String("server", "", "notes backend address (optional, defaults to config)")
	tickSeconds := flag.Int("tick", 0, "countdown refresh in seconds (optional, defaults to 60s)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("notedeck", update.Version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Server: *server}
	if tick := *tickSeconds; tick > 0 {
		opts.TickSeconds = tick
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "notedeck: %v\n", err)
		return 1
	}
	return 0
}
