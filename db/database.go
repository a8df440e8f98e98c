package db

import (
	"fmt"
	"log"
	"time"

	"melodex/config"
	"melodex/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the shared GORM database handle.
var DB *gorm.DB

// ConnectDB establishes the MySQL connection and configures the pool.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB creates or updates the schema. The unique indexes on ref_id are what
// make backfill persistence an insert-if-absent operation; they are managed
// here rather than assumed to pre-exist.
func InitDB() error {
	if err := DB.AutoMigrate(
		&model.Track{},
		&model.Album{},
		&model.Artist{},
		&model.User{},
		&model.Favorite{},
		&model.Playlist{},
		&model.PlaylistTrack{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Println("Database initialization and migration completed.")
	return nil
}

// CloseDB closes the underlying connection pool.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
