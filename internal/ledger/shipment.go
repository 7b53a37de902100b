package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"sample-stock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LineItem: taslaktaki tek bir gönderim satırı
type LineItem struct {
	StockID   uint   `json:"stockId"`
	Qty       int    `json:"qty"` // 0 ise 1 adet
	PO        string `json:"po"`
	Client    string `json:"client"`
	Product   string `json:"product"`
	Recipient string `json:"recipient"`
	Courier   string `json:"courier"`
	Tracking  string `json:"tracking"`
	Size      string `json:"size"`
}

type Confirmation struct {
	Items     []LineItem `json:"items"`
	DateSent  string     `json:"dateSent"` // YYYY-MM-DD
	ImagePath string     `json:"imagePath"`
}

// ConfirmShipment debits every line with a guarded decrement. Only active lots can
// be shipped from. One short line fails the whole batch and the caller's
// transaction rolls every debit back.
func (tx *Tx) ConfirmShipment(c Confirmation) ([]models.Shipment, error) {
	if len(c.Items) == 0 {
		return nil, invalid("En az bir gönderim satırı gerekli")
	}
	if c.DateSent != "" && !validDate(c.DateSent) {
		return nil, invalid("Tarih formatı 'YYYY-MM-DD' olmalı: %s", c.DateSent)
	}
	var imagePath *string
	if p := strings.TrimSpace(c.ImagePath); p != "" {
		imagePath = &p
	}

	shipments := make([]models.Shipment, 0, len(c.Items))
	for _, item := range c.Items {
		if item.StockID == 0 {
			return nil, invalid("stockId zorunludur (P.O: %s)", item.PO)
		}
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}

		res := tx.db.Model(&models.StockLot{}).
			Where("id = ? AND lifecycle = ? AND current_qty >= ?", item.StockID, models.LifecycleActive, qty).
			UpdateColumn("current_qty", gorm.Expr("current_qty - ?", qty))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, insufficient(item.PO)
		}

		stockID := item.StockID
		s := models.Shipment{
			StockID:   &stockID,
			PO:        item.PO,
			Client:    item.Client,
			Product:   item.Product,
			Recipient: item.Recipient,
			Courier:   item.Courier,
			Tracking:  item.Tracking,
			DateSent:  c.DateSent,
			ImagePath: imagePath,
			Qty:       qty,
			Size:      item.Size,
			Lifecycle: models.LifecycleActive,
		}
		if err := tx.db.Create(&s).Error; err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

// UndoShipment deletes the shipment without a trash entry. Only an active row is
// credited back; a trashed one returned its qty when it was trashed.
func (tx *Tx) UndoShipment(id uint) error {
	s, err := tx.lockShipment(id, models.LifecycleActive, models.LifecycleTrashed)
	if err != nil {
		return err
	}
	if s.Lifecycle == models.LifecycleActive {
		if err := tx.adjustLot(s.StockID, s.Qty); err != nil {
			return err
		}
	}
	return tx.db.Delete(&models.Shipment{}, "id = ?", id).Error
}

// TrashShipment moves an active shipment to the trash and returns its qty to the lot.
func (tx *Tx) TrashShipment(id uint) error {
	s, err := tx.lockShipment(id, models.LifecycleActive)
	if err != nil {
		return err
	}
	if err := tx.adjustLot(s.StockID, s.Qty); err != nil {
		return err
	}
	return tx.db.Model(&models.Shipment{}).Where("id = ?", id).
		Updates(map[string]any{"lifecycle": models.LifecycleTrashed, "deleted_at": time.Now()}).Error
}

// RestoreShipment re-applies the original debit; sufficiency is not re-checked.
func (tx *Tx) RestoreShipment(id uint) error {
	s, err := tx.lockShipment(id, models.LifecycleTrashed)
	if err != nil {
		return err
	}
	if err := tx.adjustLot(s.StockID, -s.Qty); err != nil {
		return err
	}
	return tx.db.Model(&models.Shipment{}).Where("id = ?", id).
		Updates(map[string]any{"lifecycle": models.LifecycleActive, "deleted_at": nil}).Error
}

// PurgeShipment deletes a trashed shipment. Its qty was returned when it was trashed.
func (tx *Tx) PurgeShipment(id uint) error {
	if _, err := tx.lockShipment(id, models.LifecycleTrashed); err != nil {
		return err
	}
	if err := tx.db.Model(&models.Shipment{}).Where("id = ?", id).
		Update("lifecycle", models.LifecyclePurging).Error; err != nil {
		return err
	}
	return tx.db.Delete(&models.Shipment{}, "id = ?", id).Error
}

func (tx *Tx) lockShipment(id uint, states ...models.Lifecycle) (*models.Shipment, error) {
	var s models.Shipment
	err := tx.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND lifecycle IN ?", id, states).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if len(states) == 1 && states[0] == models.LifecycleTrashed {
			return nil, notFound("Çöp kutusunda sevkiyat bulunamadı: %d", id)
		}
		return nil, notFound("Sevkiyat bulunamadı: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ShipmentLedger owns the shipment lifecycle and its stock debits/credits.
type ShipmentLedger struct {
	store *Store
}

func NewShipmentLedger(store *Store) *ShipmentLedger {
	return &ShipmentLedger{store: store}
}

func (l *ShipmentLedger) ConfirmShipment(ctx context.Context, c Confirmation) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := l.store.Write(ctx, func(tx *Tx) error {
		var err error
		shipments, err = tx.ConfirmShipment(c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

func (l *ShipmentLedger) Undo(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.UndoShipment(id) })
}

func (l *ShipmentLedger) Trash(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.TrashShipment(id) })
}

func (l *ShipmentLedger) Restore(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.RestoreShipment(id) })
}

func (l *ShipmentLedger) PermanentDelete(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.PurgeShipment(id) })
}

// List returns active shipments by ship date, or the trash by deletion time.
func (l *ShipmentLedger) List(ctx context.Context, includeDeleted bool) ([]models.Shipment, error) {
	q := l.store.Read(ctx)
	if includeDeleted {
		q = q.Where("lifecycle = ?", models.LifecycleTrashed).Order("deleted_at DESC, id DESC")
	} else {
		q = q.Where("lifecycle = ?", models.LifecycleActive).Order("date_sent DESC, id DESC")
	}

	shipments := make([]models.Shipment, 0)
	if err := q.Find(&shipments).Error; err != nil {
		return nil, StoreErr(err)
	}
	return shipments, nil
}

func (l *ShipmentLedger) Get(ctx context.Context, id uint) (*models.Shipment, error) {
	var s models.Shipment
	err := l.store.Read(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Sevkiyat bulunamadı: %d", id)
	}
	if err != nil {
		return nil, StoreErr(err)
	}
	return &s, nil
}

// ListByIDs returns the selected shipments; an empty ids slice returns all active ones.
func (l *ShipmentLedger) ListByIDs(ctx context.Context, ids []uint) ([]models.Shipment, error) {
	if len(ids) == 0 {
		return l.List(ctx, false)
	}
	shipments := make([]models.Shipment, 0, len(ids))
	if err := l.store.Read(ctx).Where("id IN ?", ids).Order("date_sent DESC, id DESC").Find(&shipments).Error; err != nil {
		return nil, StoreErr(err)
	}
	return shipments, nil
}
