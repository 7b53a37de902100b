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

// LotInput: stok girişi (JSON alan adları masaüstü istemcisiyle aynı)
type LotInput struct {
	PO       string `json:"po"`
	Client   string `json:"client"`
	ClientPO string `json:"clientPO"`
	Product  string `json:"product"`
	ItemNo   string `json:"itemNo"`
	Batch    string `json:"batch"`
	Note     string `json:"note"`
	Date     string `json:"date"`
	Size     string `json:"size"`
	Qty      int    `json:"qty"`
}

// LotEdit: nil alanlar değişmez
type LotEdit struct {
	OriginalQty *int    `json:"originalQty"`
	Note        *string `json:"note"`
	Client      *string `json:"client"`
	ClientPO    *string `json:"clientPO"`
	Product     *string `json:"product"`
	ItemNo      *string `json:"itemNo"`
	Batch       *string `json:"batch"`
	Date        *string `json:"date"`
	Size        *string `json:"size"`
}

func (tx *Tx) Intake(in LotInput) (*models.StockLot, error) {
	in.PO = strings.TrimSpace(in.PO)
	if in.PO == "" {
		return nil, invalid("P.O zorunludur")
	}
	if in.Qty < 0 {
		return nil, invalid("Miktar negatif olamaz: %d", in.Qty)
	}
	if in.Date != "" && !validDate(in.Date) {
		return nil, invalid("Tarih formatı 'YYYY-MM-DD' olmalı: %s", in.Date)
	}

	lot := models.StockLot{
		PO:          in.PO,
		Client:      strings.TrimSpace(in.Client),
		ClientPO:    strings.TrimSpace(in.ClientPO),
		Product:     strings.TrimSpace(in.Product),
		ItemNo:      strings.TrimSpace(in.ItemNo),
		Batch:       strings.TrimSpace(in.Batch),
		Note:        in.Note,
		DateIn:      in.Date,
		Size:        strings.TrimSpace(in.Size),
		OriginalQty: in.Qty,
		CurrentQty:  in.Qty,
		Lifecycle:   models.LifecycleActive,
	}
	if err := tx.db.Create(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

// EditLot corrects the received quantity while keeping the shipped amount fixed.
func (tx *Tx) EditLot(id uint, e LotEdit) (*models.StockLot, error) {
	lot, err := tx.lockLot(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if e.OriginalQty != nil {
		newQty := *e.OriginalQty
		if newQty < 0 {
			return nil, invalid("Miktar negatif olamaz: %d", newQty)
		}
		delta := newQty - lot.OriginalQty
		if lot.CurrentQty+delta < 0 {
			return nil, invalid("Yeni miktar (%d) sevk edilen miktardan (%d) az olamaz", newQty, lot.Shipped())
		}
		updates["original_qty"] = newQty
		updates["current_qty"] = gorm.Expr("current_qty + ?", delta)
	}
	if e.Date != nil && *e.Date != "" && !validDate(*e.Date) {
		return nil, invalid("Tarih formatı 'YYYY-MM-DD' olmalı: %s", *e.Date)
	}
	setString(updates, "note", e.Note)
	setString(updates, "client", e.Client)
	setString(updates, "client_po", e.ClientPO)
	setString(updates, "product", e.Product)
	setString(updates, "item_no", e.ItemNo)
	setString(updates, "batch", e.Batch)
	setString(updates, "date_in", e.Date)
	setString(updates, "size", e.Size)

	if len(updates) == 0 {
		return lot, nil
	}
	if err := tx.db.Model(&models.StockLot{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated models.StockLot
	if err := tx.db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (tx *Tx) TrashLot(id uint) error {
	res := tx.db.Model(&models.StockLot{}).
		Where("id = ? AND lifecycle = ?", id, models.LifecycleActive).
		Updates(map[string]any{"lifecycle": models.LifecycleTrashed, "deleted_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Stok kaydı bulunamadı: %d", id)
	}
	return nil
}

func (tx *Tx) RestoreLot(id uint) error {
	res := tx.db.Model(&models.StockLot{}).
		Where("id = ? AND lifecycle = ?", id, models.LifecycleTrashed).
		Updates(map[string]any{"lifecycle": models.LifecycleActive, "deleted_at": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Çöp kutusunda stok kaydı bulunamadı: %d", id)
	}
	return nil
}

// PurgeLot removes the lot for good; its shipments stay as orphaned history.
func (tx *Tx) PurgeLot(id uint) error {
	res := tx.db.Model(&models.StockLot{}).
		Where("id = ? AND lifecycle <> ?", id, models.LifecyclePurging).
		Update("lifecycle", models.LifecyclePurging)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Stok kaydı bulunamadı: %d", id)
	}

	if err := tx.db.Model(&models.Shipment{}).Where("stock_id = ?", id).Update("stock_id", nil).Error; err != nil {
		return err
	}
	return tx.db.Delete(&models.StockLot{}, "id = ?", id).Error
}

func (tx *Tx) lockLot(id uint) (*models.StockLot, error) {
	var lot models.StockLot
	err := tx.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND lifecycle <> ?", id, models.LifecyclePurging).
		First(&lot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Stok kaydı bulunamadı: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// adjustLot applies delta to current_qty; orphaned shipments (nil lot) are a no-op.
func (tx *Tx) adjustLot(stockID *uint, delta int) error {
	if stockID == nil || delta == 0 {
		return nil
	}
	return tx.db.Model(&models.StockLot{}).
		Where("id = ?", *stockID).
		UpdateColumn("current_qty", gorm.Expr("current_qty + ?", delta)).Error
}

func setString(updates map[string]any, column string, v *string) {
	if v != nil {
		updates[column] = strings.TrimSpace(*v)
	}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// StockLedger owns the stock lot lifecycle.
type StockLedger struct {
	store *Store
}

func NewStockLedger(store *Store) *StockLedger {
	return &StockLedger{store: store}
}

func (l *StockLedger) Intake(ctx context.Context, in LotInput) (*models.StockLot, error) {
	var lot *models.StockLot
	err := l.store.Write(ctx, func(tx *Tx) error {
		var err error
		lot, err = tx.Intake(in)
		return err
	})
	return lot, err
}

func (l *StockLedger) Edit(ctx context.Context, id uint, e LotEdit) (*models.StockLot, error) {
	var lot *models.StockLot
	err := l.store.Write(ctx, func(tx *Tx) error {
		var err error
		lot, err = tx.EditLot(id, e)
		return err
	})
	return lot, err
}

func (l *StockLedger) SoftDelete(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.TrashLot(id) })
}

func (l *StockLedger) Restore(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.RestoreLot(id) })
}

func (l *StockLedger) HardDelete(ctx context.Context, id uint) error {
	return l.store.Write(ctx, func(tx *Tx) error { return tx.PurgeLot(id) })
}

// List returns active lots newest first, or the trash ordered by deletion time.
func (l *StockLedger) List(ctx context.Context, includeDeleted bool) ([]models.StockLot, error) {
	q := l.store.Read(ctx)
	if includeDeleted {
		q = q.Where("lifecycle = ?", models.LifecycleTrashed).Order("deleted_at DESC, id DESC")
	} else {
		q = q.Where("lifecycle = ?", models.LifecycleActive).Order("created_at DESC, id DESC")
	}

	lots := make([]models.StockLot, 0)
	if err := q.Find(&lots).Error; err != nil {
		return nil, StoreErr(err)
	}
	return lots, nil
}

func (l *StockLedger) Get(ctx context.Context, id uint) (*models.StockLot, error) {
	var lot models.StockLot
	err := l.store.Read(ctx).Where("id = ?", id).First(&lot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Stok kaydı bulunamadı: %d", id)
	}
	if err != nil {
		return nil, StoreErr(err)
	}
	return &lot, nil
}

// ListByIDs keeps the creation order of List; an empty ids slice returns all active lots.
func (l *StockLedger) ListByIDs(ctx context.Context, ids []uint) ([]models.StockLot, error) {
	if len(ids) == 0 {
		return l.List(ctx, false)
	}
	lots := make([]models.StockLot, 0, len(ids))
	if err := l.store.Read(ctx).Where("id IN ?", ids).Order("created_at DESC, id DESC").Find(&lots).Error; err != nil {
		return nil, StoreErr(err)
	}
	return lots, nil
}
