package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dapurlink/backoffice/internal/config"
	"github.com/dapurlink/backoffice/internal/posdev"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	server := posdev.NewServer(posdev.NewStore(), cfg.Posdev.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.Posdev.Port)
	slog.Info("starting posdev server", "port", port)

	if err := http.ListenAndServe(port, server.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
