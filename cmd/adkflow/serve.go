package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/transparentlyai/adkflow-sub012/internal/adapters/http"
	"github.com/transparentlyai/adkflow-sub012/internal/logging"
	"github.com/transparentlyai/adkflow-sub012/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor HTTP server",
	Long:  `Starts the adkflow editor service, exposing project CRUD, validation, per-workspace clipboard operations and graph export over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		editor, cfg, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		addr := cfg.ListenAddr
		if port, _ := cmd.Flags().GetString("port"); cmd.Flags().Changed("port") {
			addr = ":" + port
		}

		var metrics *observability.Collector
		if cfg.EnableMetrics {
			metrics = observability.NewCollector("adkflow")
		}

		handler := httpAdapter.NewHandler(httpAdapter.Options{
			Sessions:   editor.Sessions(),
			Prompts:    editor.Prompts(),
			Metrics:    metrics,
			Logger:     logging.New(logging.ParseLevel(cfg.LogLevel)),
			EnableCORS: cfg.EnableCORS,
		})

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting adkflow server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("adkflow server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (overrides config)")
}
