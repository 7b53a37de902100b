package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sample-stock/internal/ledger"
	"sample-stock/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const snapshotVersion = 1

// Snapshot is the on-disk backup content: every table, ids preserved.
type Snapshot struct {
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"created_at"`
	StockLots      []models.StockLot      `json:"stock_lots"`
	Shipments      []models.Shipment      `json:"shipments"`
	Couriers       []models.Courier       `json:"couriers"`
	ClientPurposes []models.ClientPurpose `json:"client_purposes"`
	MasterRecords  []models.MasterRecord  `json:"master_records"`
	CLFRecords     []models.CLFRecord     `json:"clf_records"`
}

type File struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type Manager struct {
	store *ledger.Store
	dir   string
}

func NewManager(store *ledger.Store, dir string) *Manager {
	return &Manager{store: store, dir: dir}
}

// Create writes a snapshot of the whole store while no mutation is in flight.
func (m *Manager) Create(ctx context.Context) (*File, error) {
	snap := Snapshot{Version: snapshotVersion, CreatedAt: time.Now()}
	err := m.store.Exclusive(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("id").Find(&snap.StockLots).Error; err != nil {
				return err
			}
			if err := tx.Order("id").Find(&snap.Shipments).Error; err != nil {
				return err
			}
			if err := tx.Order("id").Find(&snap.Couriers).Error; err != nil {
				return err
			}
			if err := tx.Order("id").Find(&snap.ClientPurposes).Error; err != nil {
				return err
			}
			if err := tx.Order("id").Find(&snap.MasterRecords).Error; err != nil {
				return err
			}
			return tx.Order("id").Find(&snap.CLFRecords).Error
		})
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return nil, ledger.StoreErr(fmt.Errorf("yedek serileştirilemedi: %w", err))
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, ledger.StoreErr(fmt.Errorf("yedek dizini oluşturulamadı: %w", err))
	}

	name := fmt.Sprintf("backup-%s-%s.json", snap.CreatedAt.UTC().Format("20060102-150405.000"), uuid.New().String())
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return nil, ledger.StoreErr(fmt.Errorf("yedek dosyası yazılamadı: %w", err))
	}

	log.Printf("Yedek alındı: %s (%d stok, %d sevkiyat)", name, len(snap.StockLots), len(snap.Shipments))
	return &File{Name: name, Size: int64(len(raw)), CreatedAt: snap.CreatedAt}, nil
}

// List returns backup files newest first.
func (m *Manager) List() ([]File, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []File{}, nil
	}
	if err != nil {
		return nil, ledger.StoreErr(err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	// isim zaman damgasıyla başlıyor
	sort.Slice(files, func(i, j int) bool { return files[i].Name > files[j].Name })
	return files, nil
}

// Prune deletes all but the newest keep backups.
func (m *Manager) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	files, err := m.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := keep; i < len(files); i++ {
		if err := os.Remove(filepath.Join(m.dir, files[i].Name)); err != nil {
			log.Printf("Eski yedek silinemedi (%s): %v", files[i].Name, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Restore replaces every table with the content of the named backup.
func (m *Manager) Restore(ctx context.Context, name string) (*Snapshot, error) {
	if filepath.Base(name) != name || !isBackupName(name) {
		return nil, ledger.Errorf(ledger.KindValidation, "Geçersiz yedek adı: %s", name)
	}
	raw, err := os.ReadFile(filepath.Join(m.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ledger.Errorf(ledger.KindNotFound, "Yedek bulunamadı: %s", name)
	}
	if err != nil {
		return nil, ledger.StoreErr(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, ledger.Errorf(ledger.KindValidation, "Yedek dosyası okunamadı: %v", err)
	}
	if snap.Version != snapshotVersion {
		return nil, ledger.Errorf(ledger.KindValidation, "Desteklenmeyen yedek sürümü: %d", snap.Version)
	}

	err = m.store.Exclusive(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			// önce bağımlı tablolar
			for _, model := range []any{&models.Shipment{}, &models.StockLot{}, &models.Courier{},
				&models.ClientPurpose{}, &models.MasterRecord{}, &models.CLFRecord{}} {
				if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
					return err
				}
			}
			if err := insertAll(tx, snap.StockLots); err != nil {
				return err
			}
			if err := insertAll(tx, snap.Shipments); err != nil {
				return err
			}
			if err := insertAll(tx, snap.Couriers); err != nil {
				return err
			}
			if err := insertAll(tx, snap.ClientPurposes); err != nil {
				return err
			}
			if err := insertAll(tx, snap.MasterRecords); err != nil {
				return err
			}
			if err := insertAll(tx, snap.CLFRecords); err != nil {
				return err
			}
			return resetSequences(tx)
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Yedekten geri yüklendi: %s", name)
	return &snap, nil
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}

// Explicit ids leave postgres sequences behind; sqlite needs nothing.
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"stock_lots", "shipments", "couriers", "client_purposes", "master_records", "clf_records"} {
		sql := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)", table, table)
		if err := tx.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, "backup-") && strings.HasSuffix(name, ".json")
}
