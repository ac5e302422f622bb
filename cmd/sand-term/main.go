package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"sand-ca/internal/app"
	"sand-ca/internal/core"
	_ "sand-ca/internal/sims/sand"
	"sand-ca/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}

	// Size the grid to the terminal unless the user picked one.
	sw, sh := screen.Size()
	if _, ok := opts["w"]; !ok && sw > 0 {
		opts["w"] = strconv.Itoa(sw)
	}
	if _, ok := opts["h"]; !ok && sh > 1 {
		opts["h"] = strconv.Itoa((sh - 1) * 2)
	}

	sim := factory(opts)
	sim.Reset(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = term.Run(ctx, screen, sim, cfg.TPS, cfg.Seed)
	stop()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
