package db

import (
	"os"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/flavr-travel/flavr-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Profile{},
		&model.Destination{},
		&model.Recommendation{},
		&model.Person{},
		&model.PersonRecommendation{},
		&model.BlogPost{},
		&model.BlogPostDestination{},
		&model.BlogPostRecommendation{},
		&model.NewsletterSubscriber{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedAdminProfile(); err != nil {
		logger.Error("Failed to seed admin profile", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedAdminProfile creates the bootstrap admin account when the profiles
// table is empty. Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; when
// they are unset the dashboard stays locked until a profile is created by
// hand.
func seedAdminProfile() error {
	var count int64
	if err := DB.Model(&model.Profile{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Profiles already present, skipping admin seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("ADMIN_EMAIL / ADMIN_PASSWORD not set, no admin profile seeded", nil)
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.Profile{
		Email:        email,
		PasswordHash: hash,
		Name:         "Flavr Admin",
		IsAdmin:      true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to create admin profile", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Admin profile seeded", map[string]interface{}{
		"email": email,
	})
	return nil
}
