package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/infrastructure/config"
	"github.com/invento/backend/internal/infrastructure/logger"
	"github.com/invento/backend/internal/infrastructure/persistence"
)

// Applies the database schema and optionally seeds the initial admin account
// from INVENTO_ADMIN_EMAIL and INVENTO_ADMIN_PASSWORD.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync() //nolint:errcheck

	db, err := persistence.NewDatabase(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if err := db.Migrate(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("schema migrated")

	if err := seedAdmin(db, log); err != nil {
		log.Fatal("admin seeding failed", zap.Error(err))
	}
}

func seedAdmin(db *persistence.Database, log *zap.Logger) error {
	email := os.Getenv("INVENTO_ADMIN_EMAIL")
	password := os.Getenv("INVENTO_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info("admin seed credentials not set, skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := persistence.NewGormUserRepository(db.DB)
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Info("admin account already present", zap.String("email", email))
		return nil
	}

	admin, err := identity.NewAdmin(email, password)
	if err != nil {
		return err
	}
	if err := users.Save(ctx, admin); err != nil {
		return err
	}

	log.Info("admin account created", zap.String("email", email))
	return nil
}
