package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cozycorner-pos/internal/config"
	"cozycorner-pos/internal/handler"
	"cozycorner-pos/internal/metrics"
	"cozycorner-pos/internal/middleware"
	"cozycorner-pos/internal/repository"
	"cozycorner-pos/internal/seed"
	"cozycorner-pos/internal/service"
	"cozycorner-pos/internal/ws"
	"cozycorner-pos/pkg/database"
	"cozycorner-pos/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load config
	cfg := config.Load()
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 2. Setup Database
	sqlLevel := gormlogger.Warn
	if cfg.LogLevel >= logrus.DebugLevel {
		sqlLevel = gormlogger.Info
	}
	db, err := database.Connect(database.Options{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		LogLevel:    sqlLevel,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	// 3. WebSocket hub and metrics
	wsHub := ws.NewHub()
	go wsHub.Run()
	collector := metrics.NewCollector()

	// 4. Dependency Injection (Wiring Layers)
	clock := service.Clock{Location: cfg.Location}

	menuRepo := repository.NewMenuRepo(db)
	stockRepo := repository.NewStockRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	revenueRepo := repository.NewRevenueRepo(db)

	stockService := service.NewStockService(db, stockRepo, menuRepo, clock, service.StockConfig{
		DefaultQty: cfg.StockDefaultQty,
		AutoInit:   cfg.StockAutoInit,
	}, collector, wsHub)
	orderService := service.NewOrderService(db, orderRepo, menuRepo, stockRepo, revenueRepo, stockService, clock, service.OrderConfig{
		StrictPricing:        cfg.StrictPricing,
		RestoreStockOnCancel: cfg.RestoreStockOnCancel,
	}, collector, wsHub)
	revenueService := service.NewRevenueService(db, orderRepo, revenueRepo, clock, wsHub)
	menuService := service.NewMenuService(menuRepo, stockService, wsHub)
	dashService := service.NewDashboardService(repository.NewDashboardRepo(db), stockService, clock)
	authService, err := service.NewAuthService(cfg.AdminPassword, jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL))
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up admin auth")
	}

	// 5. Seed the menu and today's stock
	ctx := context.Background()
	if _, err := seed.Menu(ctx, menuRepo); err != nil {
		logrus.WithError(err).Fatal("failed to seed menu")
	}
	if _, err := stockService.EnsureDayInitialized(ctx, "", cfg.StockDefaultQty); err != nil {
		logrus.WithError(err).Warn("failed to initialize today's stock")
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Cozy Corner POS",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Menu:      handler.NewMenuHandler(menuService),
		Order:     handler.NewOrderHandler(orderService),
		Stock:     handler.NewStockHandler(stockService),
		Revenue:   handler.NewRevenueHandler(revenueService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}, middleware.RequireAdmin(authService))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "timezone": cfg.Location.String()})
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Panic("server stopped")
		}
	}()
	logrus.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"driver":   cfg.DBDriver,
		"timezone": cfg.Location.String(),
	}).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
	wsHub.Close()
	if err := database.Close(db); err != nil {
		logrus.WithError(err).Error("failed to close database")
	}
	logrus.Info("server exited")
}
