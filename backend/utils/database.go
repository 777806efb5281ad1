package utils

import (
	"context"
	"fmt"
	"studyhub/backend/config"
	"studyhub/backend/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB открывает базу данных для драйверов sqlite и postgres
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("storage driver %q is not a database", cfg.StorageDriver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// InitStorage возвращает хранилище ключ-значение, выбранное в конфигурации
func InitStorage(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case "", "memory":
		return storage.NewMemory(), nil
	case "sqlite", "postgres":
		db, err := InitDB(cfg)
		if err != nil {
			return nil, err
		}
		backend, err := storage.NewGormBackend(db)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return storage.NewRedisBackend(client, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
