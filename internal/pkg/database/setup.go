package database

import (
	"fmt"
	"time"

	"github.com/ManuelReschke/PlanChange/app/models"
	"github.com/ManuelReschke/PlanChange/internal/pkg/env"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// DSN builds the MySQL data source name from DB_* variables.
func DSN() string {
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", "planchange"),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "planchange"),
	)
}

// SetupDatabase connects to MySQL with retries and stores the handle in DB.
// With DB_AUTO_MIGRATE=true the plan tables are auto migrated as well; the
// SQL files under migrations/ stay the source of truth.
func SetupDatabase() (*gorm.DB, error) {
	var err error
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       DSN(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if err == nil {
			if env.GetEnv("DB_AUTO_MIGRATE", "false") != "true" {
				return DB, nil
			}
			if err = DB.AutoMigrate(
				&models.Plan{},
				&models.Pricing{},
				&models.PlanPricing{},
			); err != nil {
				return nil, fmt.Errorf("auto migrate plan tables: %w", err)
			}
			return DB, nil
		}

		fiberlog.Warnf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			fiberlog.Infof("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	return nil, err
}
