package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/i-am-zach/uiuc-grade-stats/internal/app"
	"github.com/i-am-zach/uiuc-grade-stats/internal/config"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server"
)

func init() {
	if _, err := os.Stat("/.dockerenv"); os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			log.Printf("note: could not load .env file (%v); continuing with system environment", err)
		}
	} else {
		log.Println("Running in Docker container, skipping .env file loading")
	}
	log.SetPrefix("[gradeview-api] ")
}

func gracefulShutdown(apiServer *http.Server, cancelBackground context.CancelFunc, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")
	stop()
	cancelBackground()

	// In-flight requests get 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	done <- true
}

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	a, err := app.New(bgCtx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer a.Close()

	a.LoadDatasetAsync(bgCtx)

	apiServer, limiter := server.NewServer(a)
	limiter.StartCleanup(bgCtx, server.RateLimitCleanupInterval)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, cancelBackground, done)

	log.Printf("Listening on %s (dataset: %s, store: %s)", apiServer.Addr, cfg.Dataset.Source, cfg.Store.Backend)
	err = apiServer.ListenAndServe()

	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
