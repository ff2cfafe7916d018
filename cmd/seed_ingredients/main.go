package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/foodbook/backend/config"
	"github.com/foodbook/backend/internal/database"
	"github.com/foodbook/backend/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	csvPath := flag.String("csv", "", "path to the ingredients CSV (defaults to INGREDIENTS_CSV)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	if *csvPath == "" {
		*csvPath = cfg.IngredientsCSV
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	created, err := service.NewIngredientService(db).SeedFromCSV(context.Background(), *csvPath)
	if err != nil {
		logrus.Fatalf("seeding failed after %d rows: %v", created, err)
	}
	logrus.Infof("data was successfully loaded to the database (%d new ingredients)", created)
}
