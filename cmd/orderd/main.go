// cmd/orderd/main.go
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

	"tableside/internal/platform/config"
	"tableside/internal/platform/di"
)

func main() {
	configDir := flag.String("config-dir", "", "configuration directory (default: current directory)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Printf("[boot] FATAL: load config: %v", err)
		os.Exit(1)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Printf("[boot] FATAL: build container: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("[boot] WARN: container close: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           container.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[boot] orderd listening addr=%s backend=%s", cfg.Listen, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[boot] FATAL: serve: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("[boot] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[boot] WARN: shutdown: %v", err)
	}
	log.Printf("[boot] orderd stopped")
}
