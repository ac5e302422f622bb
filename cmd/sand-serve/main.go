package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sand-ca/internal/app"
	"sand-ca/internal/core"
	_ "sand-ca/internal/sims/sand"
	"sand-ca/internal/stream"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	sim := factory(opts)
	sim.Reset(cfg.Seed)

	size := sim.Size()
	log.Printf("serving %s %dx%d at %d tps on %s", sim.Name(), size.W, size.H, cfg.TPS, *addr)
	srv := stream.NewServer(sim, cfg.TPS)
	httpSrv := &http.Server{Addr: *addr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Printf("sim loop: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
