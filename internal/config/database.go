package config

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB abre a conexão MySQL usada quando STORE_DRIVER=mysql
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required for the mysql store driver")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
