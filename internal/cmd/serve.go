package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/api"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the REST API server that compiles and queries infrastructure graphs",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP server port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	addr := cfg.API.Addr
	if servePort != "" {
		addr = ":" + servePort
	}

	compiler := service.New(appLogger)
	server := api.NewServer(compiler, appLogger)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	go func() {
		log.Printf("Starting API server on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Application shutdown error: %v", err)
	}

	log.Println("API server stopped")
}
