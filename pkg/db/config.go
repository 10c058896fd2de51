package db

import (
	"fmt"

	"radar/pkg/config"
)

// GetDSN: 드라이버별 DSN 생성. DB_DSN이 있으면 그대로 사용
func GetDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	case config.DriverSQLite:
		return "file:" + cfg.Name + ".db?_foreign_keys=on"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}
}
