package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "STOCK_DEFAULT_QTY", "STRICT_PRICING", "JWT_TTL_HOURS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 50, cfg.StockDefaultQty)
	assert.True(t, cfg.StockAutoInit)
	assert.False(t, cfg.StrictPricing)
	assert.False(t, cfg.RestoreStockOnCancel)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.NotNil(t, cfg.Location)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("STOCK_DEFAULT_QTY", "20")
	t.Setenv("STRICT_PRICING", "true")
	t.Setenv("RESTORE_STOCK_ON_CANCEL", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 20, cfg.StockDefaultQty)
	assert.True(t, cfg.StrictPricing)
	assert.True(t, cfg.RestoreStockOnCancel)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STOCK_DEFAULT_QTY", "lots")
	t.Setenv("STOCK_AUTO_INIT", "maybe")

	cfg := Load()

	assert.Equal(t, 50, cfg.StockDefaultQty)
	assert.True(t, cfg.StockAutoInit)
}
