package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DatabaseDriver    string // "sqlite" veya "postgres"
	DatabaseDSN       string
	DBDebug           bool
	CORSOrigins       string
	BodyLimitMB       int
	UploadDir         string // sevkiyat fotoğraflarının kaydedileceği klasör
	BackupDir         string
	BackupInterval    time.Duration // 0 ise zamanlanmış yedek kapalı
	BackupKeep        int
	JWTSecret         string
	AdminPasswordHash string // bcrypt hash; boşsa admin rotaları açık
}

// AuthEnabled reports whether maintenance routes require an admin token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func Load() *Config {
	// .env yoksa sorun değil, ortam değişkenleri yeterli
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env dosyası bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "3000"),
		DatabaseDriver:    getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "database.sqlite"),
		DBDebug:           getBool("DB_DEBUG", false),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "*"),
		BodyLimitMB:       getInt("BODY_LIMIT_MB", 500),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		BackupDir:         getEnv("BACKUP_DIR", "./backups"),
		BackupInterval:    getDuration("BACKUP_INTERVAL", 24*time.Hour),
		BackupKeep:        getInt("BACKUP_KEEP", 14),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		log.Printf("[WARN] DATABASE_DRIVER=%q desteklenmiyor, sqlite kullanılıyor", cfg.DatabaseDriver)
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if !cfg.AuthEnabled() {
		log.Println("[WARN] JWT_SECRET/ADMIN_PASSWORD_HASH tanımlı değil, admin rotaları korumasız.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q sayı değil, varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[WARN] %s=%q geçersiz boolean", key, v)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] %s=%q geçersiz süre, varsayılan %s kullanılıyor", key, v, def)
		return def
	}
	return d
}
