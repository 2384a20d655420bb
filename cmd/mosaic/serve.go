package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/mosaic"
	httpAdapter "github.com/aretw0/mosaic/internal/adapters/http"
	"github.com/aretw0/mosaic/internal/config"
	"github.com/aretw0/mosaic/internal/logging"
	"github.com/aretw0/mosaic/pkg/adapters/feed"
	redisAdapter "github.com/aretw0/mosaic/pkg/adapters/redis"
	"github.com/aretw0/mosaic/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard engine HTTP server",
	Long:  `Hosts one dashboard session and exposes the engine (tree edits, history navigation, data fetches) as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen = listen
		}

		logger := logging.New(cfg.Level())

		registry := prometheus.NewRegistry()
		metrics := observability.New(registry)

		opts := []mosaic.Option{
			mosaic.WithLogger(logger),
			mosaic.WithHooks(metrics.Hooks()),
		}
		if cfg.Feed.BaseURL != "" {
			opts = append(opts, mosaic.WithFetcher(feed.New(cfg.Feed.BaseURL,
				feed.WithRecordsPath(strings.Split(cfg.Feed.RecordsPath, ".")...),
			)))
		}
		if cfg.Redis.Addr != "" {
			opts = append(opts, mosaic.WithStore(redisAdapter.New(
				cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redisAdapter.WithTTL(cfg.Redis.TTL),
			)))
		}

		engine, err := mosaic.New(opts...)
		if err != nil {
			fmt.Printf("Error initializing mosaic: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(engine, logger,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Mosaic Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		case <-shutdown:
			fmt.Println("\nShutdown signal received, shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("could not stop server gracefully", "err", err)
				srv.Close()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8791", "HTTP listen address (overrides config)")
}
