package app

import (
	"go-crm/internal/config"
	"go-crm/internal/shared/connection"
	"go-crm/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	// Redis is optional: without it, flash messages degrade to the response
	// body and the options cache is skipped.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return err
		}
	} else {
		zap.L().Info("redis not configured, flash and options cache disabled")
	}

	disk, err := storage.NewDisk(cfg.StorageRoot)
	if err != nil {
		return err
	}

	return registerModules(router, cfg, db, rdb, disk)
}
