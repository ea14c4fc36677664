package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"go-crm/internal/company"
	"go-crm/internal/config"
	"go-crm/internal/employee"
	"go-crm/internal/shared/connection"
	"go-crm/internal/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type seedCompany struct {
	name     string
	email    string
	website  string
	logoFile string // expected under cmd/seeder/logos/
}

var seedCompanies = []seedCompany{
	{
		name:     "AICorp Solutions",
		email:    "info@aicorp.com",
		website:  "https://aicorp.com",
		logoFile: "aiapp-logo.png",
	},
	{
		name:     "A Industries",
		email:    "contact@aindustries.com",
		website:  "https://aindustries.com",
		logoFile: "a-logo.jpg",
	},
	{
		name:     "Bird Labs",
		email:    "hello@birdlabs.com",
		website:  "https://birdlabs.com",
		logoFile: "bird_app_logo.jpg",
	},
}

var firstNames = []string{
	"Ann", "Ben", "Clara", "Dion", "Elsa", "Femi", "Gina", "Hugo",
	"Ines", "Joel", "Kira", "Liam", "Mona", "Nils", "Omar", "Pia",
}

var lastNames = []string{
	"Lee", "Santos", "Okafor", "Meyer", "Tanaka", "Silva", "Novak",
	"Haddad", "Kovacs", "Moreau", "Lindgren", "Petrov",
}

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	ctx := context.Background()

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	if err := db.AutoMigrate(&company.Company{}, &employee.Employee{}); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	disk, err := storage.NewDisk(cfg.StorageRoot)
	if err != nil {
		logger.Fatal("open storage failed", zap.Error(err))
	}

	companyRepo := company.NewRepository(db)
	employeeRepo := employee.NewRepository(db)

	for _, seed := range seedCompanies {
		comp := &company.Company{
			ID:      uuid.New(),
			Name:    seed.name,
			Email:   seed.email,
			Website: seed.website,
			Logo:    copyLogo(ctx, disk, seed.logoFile, logger),
		}

		if err := companyRepo.Create(ctx, comp); err != nil {
			logger.Fatal("seed company failed", zap.String("name", seed.name), zap.Error(err))
		}
		logger.Info("seeded company", zap.String("name", seed.name))

		for i, n := 0, 5+rand.Intn(21); i < n; i++ {
			first := firstNames[rand.Intn(len(firstNames))]
			last := lastNames[rand.Intn(len(lastNames))]
			empl := &employee.Employee{
				ID:        uuid.New(),
				CompanyID: comp.ID,
				FirstName: first,
				LastName:  last,
				Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
				Phone:     fmt.Sprintf("+1-555-%04d", rand.Intn(10000)),
			}
			if err := employeeRepo.Create(ctx, empl); err != nil {
				logger.Fatal("seed employee failed", zap.Error(err))
			}
		}
	}

	logger.Info("seeding complete")
}

// copyLogo moves a bundled logo into the public store, returning the stored
// path or "" when the bundled file is missing.
func copyLogo(ctx context.Context, disk *storage.Disk, filename string, logger *zap.Logger) string {
	src := filepath.Join("cmd", "seeder", "logos", filename)
	content, err := os.ReadFile(src)
	if err != nil {
		logger.Warn("seed logo not found, skipping", zap.String("file", src))
		return ""
	}

	path := "company-logos/" + filename
	if err := disk.Put(ctx, path, content); err != nil {
		logger.Warn("copy seed logo failed", zap.String("file", src), zap.Error(err))
		return ""
	}
	return path
}
