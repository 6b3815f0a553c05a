// Command init-stock creates the stock rows of a business day. Run it from
// cron shortly after midnight when the API's lazy initialization is off.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cozycorner-pos/internal/config"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/service"
	"cozycorner-pos/pkg/database"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load config
	cfg := config.Load()
	logrus.SetLevel(cfg.LogLevel)

	date := flag.String("date", "", "business day YYYY-MM-DD (default: today in TIMEZONE)")
	qty := flag.Int("qty", cfg.StockDefaultQty, "quantity for items without a row")
	flag.Parse()

	// 2. Setup Database
	db, err := database.Connect(database.Options{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	// 3. Initialize
	stock := service.NewStockService(db,
		repository.NewStockRepo(db),
		repository.NewMenuRepo(db),
		service.Clock{Location: cfg.Location},
		service.StockConfig{DefaultQty: *qty},
		nil, nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := stock.EnsureDayInitialized(ctx, *date, *qty)
	if err != nil {
		logrus.WithError(err).Error("stock initialization failed")
		_ = database.Close(db)
		os.Exit(1)
	}

	day := *date
	if day == "" {
		day = service.Clock{Location: cfg.Location}.Today()
	}
	logrus.WithFields(logrus.Fields{"date": day, "created": created, "quantity": *qty}).Info("stock initialization done")
}
