// Command server runs the devconnector API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector/internal/bootstrap"
	"devconnector/internal/config"
	"devconnector/internal/observability"
	"devconnector/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "devconnector-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	rt, err := bootstrap.Init(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(server.NewServer(cfg, rt), sigChan, shutdownTracing); err != nil {
		log.Fatal(err)
	}
}

type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until a signal arrives, then shuts it down and runs cleanup in order.
// It returns only after cleanup has finished, since Start returns as soon as the listener closes.
func serve(srv lifecycle, signals <-chan os.Signal, cleanup ...func(context.Context) error) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-signals

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		for _, fn := range cleanup {
			if err := fn(ctx); err != nil {
				log.Printf("Cleanup error: %v", err)
			}
		}
	}()

	if err := srv.Start(); err != nil {
		return err
	}
	<-done
	return nil
}
