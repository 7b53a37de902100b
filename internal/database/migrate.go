package database

import (
	"fmt"
	"log"
	"time"

	"sample-stock/internal/models"

	"gorm.io/gorm"
)

// migration: sıralı, idempotent şema adımı. Her adım mevcut şemayı kontrol eder.
type migration struct {
	Name  string
	Apply func(tx *gorm.DB) error
}

// Tables lists every persisted model in dependency order.
func Tables() []any {
	return []any{
		&models.StockLot{},
		&models.Shipment{},
		&models.Courier{},
		&models.ClientPurpose{},
		&models.MasterRecord{},
		&models.CLFRecord{},
	}
}

var migrations = []migration{
	{
		// Eski masaüstü sürümünde tablo adı "inventory" idi
		Name: "0001_adopt_legacy_inventory",
		Apply: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if m.HasTable("inventory") && !m.HasTable(&models.StockLot{}) {
				log.Println("inventory tablosu stock_lots olarak yeniden adlandırılıyor...")
				return m.RenameTable("inventory", &models.StockLot{})
			}
			return nil
		},
	},
	{
		Name: "0002_adopt_legacy_lookups",
		Apply: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if m.HasTable("clf_data") && !m.HasTable(&models.CLFRecord{}) {
				if err := m.RenameTable("clf_data", &models.CLFRecord{}); err != nil {
					return err
				}
			}
			// master_data eski sürümde her açılışta silinip yeniden oluşturuluyordu, taşınacak veri yok
			if m.HasTable("master_data") {
				return m.DropTable("master_data")
			}
			return nil
		},
	},
	{
		Name: "0003_create_tables",
		Apply: func(tx *gorm.DB) error {
			for _, t := range Tables() {
				if err := tx.AutoMigrate(t); err != nil {
					return fmt.Errorf("automigrate %T: %w", t, err)
				}
			}
			return nil
		},
	},
	{
		Name: "0004_backfill_lifecycle",
		Apply: func(tx *gorm.DB) error {
			for _, t := range []any{&models.StockLot{}, &models.Shipment{}} {
				if !tx.Migrator().HasColumn(t, "deleted_at") {
					continue
				}
				if err := tx.Model(t).
					Where("deleted_at IS NOT NULL AND lifecycle = ?", models.LifecycleActive).
					Update("lifecycle", models.LifecycleTrashed).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		// Eski kayıtlarda qty kolonu sonradan eklendi, boş kalanlar 1 adet sayılır
		Name: "0005_default_shipment_qty",
		Apply: func(tx *gorm.DB) error {
			return tx.Model(&models.Shipment{}).
				Where("qty IS NULL OR qty < 1").
				Update("qty", 1).Error
		},
	},
}

// Migrate applies every pending step once, in order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return fmt.Errorf("schema_migrations oluşturulamadı: %w", err)
	}

	for _, step := range migrations {
		var count int64
		if err := db.Model(&models.SchemaMigration{}).Where("name = ?", step.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := step.Apply(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaMigration{Name: step.Name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s başarısız: %w", step.Name, err)
		}
		log.Printf("Migration uygulandı: %s", step.Name)
	}
	return nil
}
