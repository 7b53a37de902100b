package models

import "time"

// StockLot: Bir P.O'ya karşı teslim alınan numune partisi
type StockLot struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PO          string     `gorm:"size:100;not null;index" json:"po"`
	Client      string     `gorm:"size:150;index" json:"client"`
	ClientPO    string     `gorm:"size:100" json:"client_po"`
	Product     string     `gorm:"size:255" json:"product"`
	ItemNo      string     `gorm:"size:100" json:"item_no"`
	Batch       string     `gorm:"size:100" json:"batch"`
	Note        string     `gorm:"size:500" json:"note"`
	DateIn      string     `gorm:"size:10" json:"date_in"` // YYYY-MM-DD
	Size        string     `gorm:"size:50" json:"size"`
	OriginalQty int        `gorm:"not null;default:0" json:"original_qty"` // teslim alınan miktar
	CurrentQty  int        `gorm:"not null;default:0" json:"current_qty"`  // kalan miktar
	Lifecycle   Lifecycle  `gorm:"size:10;not null;default:active;index" json:"lifecycle"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at"`
}

// Shipped returns how much of the lot is currently encumbered by shipments.
func (l StockLot) Shipped() int {
	return l.OriginalQty - l.CurrentQty
}
