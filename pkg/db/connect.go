package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"radar/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect: 설정된 드라이버로 DB 연결을 설정하고 반환
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := GetDSN(cfg)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Printf("❌ %s 연결 실패: %v", cfg.Driver, err)
		return nil, err
	}

	log.Printf("✅ %s 연결 성공!", cfg.Driver)
	return db, nil
}

// Open: 공통 gorm 옵션으로 연결. 유니크 제약 위반은 gorm.ErrDuplicatedKey로 변환됨
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// Ping: 헬스 체크용 연결 확인
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
