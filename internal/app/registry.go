package app

import (
	"go-crm/internal/company"
	"go-crm/internal/config"
	"go-crm/internal/employee"
	"go-crm/internal/events"
	"go-crm/internal/flash"
	"go-crm/internal/middleware"
	"go-crm/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	disk *storage.Disk,
) error {
	router.Use(middleware.RequestID())

	// --- Infrastructure ---
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, zap.L())
	}
	flashStore := flash.NewStore(rdb)

	// --- Repositories ---
	companyRepo := company.NewRepository(db)
	employeeRepo := employee.NewRepository(db)

	// --- Services ---
	companyService := company.NewService(db, companyRepo, disk, publisher, rdb)
	employeeService := employee.NewService(db, employeeRepo, publisher)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, flashStore)
	employeeHandler := employee.NewHandler(employeeService, companyService, flashStore)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler)
	}

	// Uploaded logos are public-readable at /storage/<path>.
	router.Static("/storage", disk.Root())

	return nil
}
