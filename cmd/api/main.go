package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/foodbook/backend/config"
	"github.com/foodbook/backend/internal/database"
	"github.com/foodbook/backend/internal/server"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	srv := server.New(cfg, db, rdb)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		logrus.Infof("received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server shutdown error: %v", err)
	}
	logrus.Info("server stopped")
}
