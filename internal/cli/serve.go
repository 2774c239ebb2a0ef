package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/apiscout/apiscout/internal/web"
)

// NewServeCmd creates the 'serve' command for running the HTTP server.
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP server",
		Long: `Start the apiscout HTTP server.

Routes:
  GET  /            - minimal search page
  GET  /health      - liveness probe with version
  POST /api/search  - JSON search, body {"query": "..."}
  GET  /api/stats   - catalog statistics

An empty catalog is seeded with the built-in starter records on boot.`,
		Example: `  apiscout serve
  apiscout serve --port 9090

  curl -s -X POST localhost:8080/api/search -d '{"query":"weather"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")

	return cmd
}

// runServe starts the HTTP server with signal handling. Implements
// graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe(port int) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	// First-boot convenience: a fresh catalog gets the starter records
	count, err := sess.store.CountAPIs()
	if err != nil {
		return fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if count == 0 {
		seeded, err := sess.store.SeedDefaults()
		if err != nil {
			log.Printf("Warning: failed to seed catalog: %v", err)
		} else {
			log.Printf("Empty catalog, seeded %d starter records", seeded)
		}
	}

	if port == 0 {
		port = sess.cfg.Settings.HTTPPort
	}
	addr := fmt.Sprintf(":%d", port)
	server := web.NewServer(sess.store, sess.engine, addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)
		cancel()
		if err := <-errChan; err != nil {
			log.Printf("Error during shutdown: %v", err)
			return err
		}
		log.Println("Shutdown complete")
		return nil

	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
