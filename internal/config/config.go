package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting of the API. Values come from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port string

	DBDriver    string // sqlite | postgres
	DBPath      string
	DatabaseURL string

	AdminPassword string
	JWTSecret     string
	JWTTTL        time.Duration

	Location *time.Location

	StockDefaultQty      int
	StockAutoInit        bool
	StrictPricing        bool
	RestoreStockOnCancel bool

	LogLevel logrus.Level
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "5000"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:               getEnv("DB_PATH", "cozycorner.db"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		AdminPassword:        getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:            getEnv("JWT_SECRET", "cozycorner-secret-change-in-production"),
		JWTTTL:               time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,
		Location:             loadLocation(getEnv("TIMEZONE", "Asia/Jakarta")),
		StockDefaultQty:      getInt("STOCK_DEFAULT_QTY", 50),
		StockAutoInit:        getBool("STOCK_AUTO_INIT", true),
		StrictPricing:        getBool("STRICT_PRICING", false),
		RestoreStockOnCancel: getBool("RESTORE_STOCK_ON_CANCEL", false),
		LogLevel:             logrus.InfoLevel,
	}

	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		cfg.LogLevel = lvl
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid boolean %q, using %t", v, fallback)
		return fallback
	}
	return b
}

// loadLocation falls back to a fixed UTC+7 zone when tzdata is missing.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.WithField("timezone", name).Warn("timezone not available, falling back to WIB (UTC+7)")
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}
