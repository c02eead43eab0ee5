package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/config"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/logging"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

func NewDB(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logging.Gorm(logger),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.Open(cfg.DBUrl), nil
	case "postgres", "":
		pgxCfg, err := pgx.ParseConfig(cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return postgres.New(postgres.Config{
			Conn: stdlib.OpenDB(*pgxCfg),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SeedAdmin creates the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the staff table is empty. It is a no-op otherwise.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, logger logrus.FieldLogger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	staffRepo := repository.NewStaffRepository(db)
	n, err := staffRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count staff: %w", err)
	}
	if n > 0 {
		return nil
	}

	authCfg := auth.ConfigFrom(cfg)
	svc := auth.NewService(staffRepo, auth.NewTokenManager(authCfg), auth.NewHasher(authCfg.BcryptCost))

	admin, err := svc.Register(ctx, auth.RegisterInput{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Role:     "admin",
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.WithField("staff_id", admin.ID).Info("bootstrap admin created")
	return nil
}
