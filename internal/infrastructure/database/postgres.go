package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/vialtrack/vialtrack-api/internal/config"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant entities
		&entity.Org{},
		&entity.UserRole{},
		&entity.Profile{},

		// CRM entities
		&entity.Contact{},
		&entity.Protocol{},
		&entity.ProtocolItem{},
		&entity.LeadSubmission{},

		// Inventory entities
		&entity.Peptide{},
		&entity.Lot{},
		&entity.Bottle{},
		&entity.Movement{},
		&entity.MovementItem{},

		// Sales entities
		&entity.SalesOrder{},
		&entity.SalesOrderItem{},
		&entity.Commission{},

		// System entities
		&entity.Notification{},
		&entity.ChatMessage{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the default org and its admin profile when
// configured via environment variables
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	orgName := viper.GetString("DEFAULT_ORG_NAME")
	orgSlug := viper.GetString("DEFAULT_ORG_SLUG")
	if orgName == "" || orgSlug == "" {
		log.Println("No default org configured, skipping seed")
		return nil
	}

	var org entity.Org
	if err := db.Where("slug = ?", orgSlug).First(&org).Error; err != nil {
		org = entity.Org{Name: orgName, Slug: orgSlug}
		if err := db.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create default org: %w", err)
		}
		log.Printf("Default org created: %s", orgSlug)
	}

	adminUserID := viper.GetString("ADMIN_USER_ID")
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminName := viper.GetString("ADMIN_NAME")

	if adminUserID != "" && adminEmail != "" {
		userID, err := uuid.Parse(adminUserID)
		if err != nil {
			log.Printf("Warning: invalid ADMIN_USER_ID: %v", err)
			return nil
		}

		var existing entity.Profile
		if err := db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
			if adminName == "" {
				adminName = "Admin"
			}
			admin := entity.Profile{
				UserID:   userID,
				OrgID:    &org.ID,
				FullName: adminName,
				Email:    adminEmail,
				Role:     enum.AppRoleAdmin,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("Warning: failed to create admin profile: %v", err)
			} else {
				log.Printf("Admin profile created: %s", adminEmail)
			}

			role := entity.UserRole{UserID: userID, OrgID: org.ID, Role: string(enum.AppRoleAdmin)}
			if err := db.Where("user_id = ? AND org_id = ?", userID, org.ID).
				FirstOrCreate(&role).Error; err != nil {
				log.Printf("Warning: failed to create admin role: %v", err)
			}
		} else {
			log.Printf("Admin profile already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
