package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udusdev/biovote/internal/config"
	"github.com/udusdev/biovote/internal/logger"
	"github.com/udusdev/biovote/internal/stub"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Log.Level)
	log := logger.Get()

	db, err := stub.OpenDB(cfg.Stub.DBPath)
	if err != nil {
		log.Fatal("Failed to open stub database", "path", cfg.Stub.DBPath, "error", err)
	}
	defer db.Close()

	server, err := stub.New(cfg, db)
	if err != nil {
		log.Fatal("Failed to create stub server", "error", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Stub server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Error("Shutdown error", "error", err)
	}
}
