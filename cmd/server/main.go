package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sample-stock/internal/admin"
	"sample-stock/internal/auth"
	"sample-stock/internal/backup"
	"sample-stock/internal/config"
	"sample-stock/internal/database"
	"sample-stock/internal/inventory"
	"sample-stock/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	queries := database.NewQueryLog(200)
	db, err := database.Open(database.Options{
		Driver:  cfg.DatabaseDriver,
		DSN:     cfg.DatabaseDSN,
		Debug:   cfg.DBDebug,
		Queries: queries,
	})
	if err != nil {
		log.Fatalf("Veritabanı açılamadı: %v", err)
	}
	defer database.Close(db)

	store := ledger.NewStore(db)
	deps := inventory.NewDeps(store, cfg.UploadDir)
	backups := backup.NewManager(store, cfg.BackupDir)

	app := fiber.New(fiber.Config{
		ErrorHandler: inventory.ErrorHandler,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	// Sevkiyat fotoğrafları
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")
	inventory.Register(api, deps)

	// Yönetici girişi (ADMIN_PASSWORD_HASH tanımlıysa)
	api.Post("/admin/login", auth.LoginHandler(cfg))

	adminRoutes := api.Group("/admin")
	adminRoutes.Use(auth.RequireAdmin(cfg))
	adminRoutes.Get("/backups", admin.ListBackupsHandler(backups))
	adminRoutes.Post("/backups", admin.CreateBackupHandler(backups, cfg.BackupKeep))
	adminRoutes.Post("/backups/restore", admin.RestoreBackupHandler(backups))

	debugRoutes := api.Group("/debug")
	debugRoutes.Use(auth.RequireAdmin(cfg))
	debugRoutes.Post("/reset-db", admin.ResetDBHandler(store))
	debugRoutes.Get("/queries", admin.RecentQueriesHandler(queries))
	debugRoutes.Delete("/queries", admin.ClearQueriesHandler(queries))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go backups.Run(ctx, cfg.BackupInterval, cfg.BackupKeep)

	go func() {
		<-ctx.Done()
		log.Println("Sunucu kapatılıyor...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Println("Kapatma hatası:", err)
		}
	}()

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
