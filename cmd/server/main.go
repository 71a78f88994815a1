package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customize-svc/internal/app"
	"customize-svc/internal/config"
	"customize-svc/internal/i18n"
	"customize-svc/internal/workflow"
)

func main() {
	cfg := config.Load()
	i18n.Init(cfg.DefaultLocale)

	// MongoDB, stores and services
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.New(bootCtx, cfg)
	cancelBoot()
	if err != nil {
		log.Fatalf("Failed to start request services: %v", err)
	}
	defer a.Close(context.Background())
	for _, k := range []*workflow.Kind{a.Events.Kind(), a.Tours.Kind()} {
		log.Printf("%s workflow ready: %d statuses, proposals open in %v", k.Name, len(k.Statuses()), k.OpenStatuses())
	}

	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			log.Printf("ERROR readiness: %v", err)
			http.Error(w, "mongodb unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Request service started on :%s (env: %s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
