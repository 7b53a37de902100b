package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver  string
	DSN     string
	Debug   bool
	Queries *QueryLog // nil ise SQL kaydı tutulmaz
}

// newLogger: NotFound yolları (First) normal akış, log kirletmesin
func newLogger(w logger.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

// Open connects to the configured store and applies migrations.
func Open(opts Options) (*gorm.DB, error) {
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	gormLogger := newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), level)
	if opts.Queries != nil {
		gormLogger = &RecordingLogger{Interface: gormLogger, Queries: opts.Queries}
	}
	cfg := &gorm.Config{Logger: gormLogger}

	var (
		db  *gorm.DB
		err error
	)
	switch opts.Driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(opts.DSN), cfg)
	case DriverSQLite, "":
		if !isMemoryDSN(opts.DSN) {
			if mkErr := os.MkdirAll(filepath.Dir(opts.DSN), 0o755); mkErr != nil {
				return nil, fmt.Errorf("veritabanı klasörü oluşturulamadı: %w", mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(opts.DSN), cfg)
	default:
		return nil, fmt.Errorf("bilinmeyen veritabanı sürücüsü: %s", opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db alınamadı: %w", err)
	}

	if db.Dialector.Name() == DriverSQLite {
		// Tek bağlantı: yazma işlemleri sıraya girer, in-memory db kaybolmaz
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		if !isMemoryDSN(opts.DSN) {
			db.Exec("PRAGMA journal_mode = WAL")
			db.Exec("PRAGMA synchronous = NORMAL")
		}
		db.Exec("PRAGMA foreign_keys = ON")
		db.Exec("PRAGMA busy_timeout = 5000")
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Veritabanı bağlantısı başarılı (%s). Migration tamamlandı.", db.Dialector.Name())
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
