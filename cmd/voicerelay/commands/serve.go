// ABOUTME: Serve command runs the HTTP gateway
// ABOUTME: Exposes the agent, streaming, batch, and store endpoints with graceful shutdown
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/voicerelay/internal/httpserver"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Long: `Start the HTTP gateway

Serves the agent API: complete and streaming runs, multipart batch audio
uploads, and vector store management.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
		Example: `  # Start on the configured address
  voicerelay serve

  # Start on a specific port
  voicerelay serve --addr :9090`,
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(addr string) error {
	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.Close()

	if addr == "" {
		addr = st.cfg.HTTPAddr
	}

	handlers := httpserver.NewHandlers(st.supervisor, st.coordinator, st.stores)
	server := httpserver.NewServer(addr, handlers)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if !quiet {
		log.Printf("voicerelay gateway listening on %s", addr)
	}

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
