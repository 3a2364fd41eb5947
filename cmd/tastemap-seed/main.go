package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tastemap/pkg/business"
	"tastemap/pkg/cache"
	"tastemap/pkg/catalog"
	"tastemap/pkg/db"
	"tastemap/pkg/hours"
	"tastemap/pkg/locale"
	"tastemap/pkg/seed"
	"tastemap/pkg/store"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	manager, err := openDatabase()
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer manager.Close()

	if err := catalog.Migrate(manager.DB()); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	cacheManager := openCache(logger)
	if cacheManager != nil {
		defer cacheManager.Close()
	}

	cuisines := catalog.NewCuisineRepository(store.NewGorm[*catalog.Cuisine](manager), cacheManager, logger)
	restaurants := catalog.NewRestaurantRepository(store.NewGorm[*catalog.Restaurant](manager), cacheManager, logger, hours.SystemClock{}, locale.Default{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	outcome := seed.Populate(ctx, cuisines, restaurants)
	switch outcome.State {
	case business.SaveComplete:
		logger.Info("catalog seeded")
	case business.SaveRulesBroken:
		logger.Warn("seeding stopped by rule check", zap.String("reason", outcome.Message))
	case business.SaveFailed:
		logger.Fatal("seeding failed", zap.String("reason", outcome.Message))
	}
}

func openDatabase() (*db.Manager, error) {
	driver := getEnv("DB_DRIVER", string(db.DriverSQLite))
	if db.Driver(driver) == db.DriverSQLite {
		return db.NewDefaultManager(getEnv("DB_PATH", "tastemap.db"))
	}

	port, err := strconv.Atoi(getEnv("DB_PORT", "3306"))
	if err != nil {
		return nil, err
	}
	config := &db.Config{
		Driver:       db.DriverMySQL,
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         port,
		Username:     getEnv("DB_USER", "root"),
		Password:     getEnv("DB_PASSWORD", ""),
		Database:     getEnv("DB_NAME", "tastemap"),
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		QueryTimeout: 30 * time.Second,
	}
	return db.NewManager(config)
}

func openCache(logger *zap.Logger) *cache.Manager {
	if getEnv("CACHE_ENABLED", "false") != "true" {
		return nil
	}
	config := cache.DefaultConfig()
	config.Host = getEnv("REDIS_HOST", config.Host)
	if port, err := strconv.Atoi(getEnv("REDIS_PORT", strconv.Itoa(config.Port))); err == nil {
		config.Port = port
	}
	config.Password = getEnv("REDIS_PASSWORD", "")

	cacheManager, err := cache.NewManager(config)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", zap.Error(err))
		return nil
	}
	return cacheManager
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
