package models

import "time"

// Shipment: Bir stok partisinden müşteriye/alıcıya yapılan gönderim
type Shipment struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Parti kalıcı silinirse NULL olur, sevkiyat geçmişi korunur
	StockID   *uint      `gorm:"index" json:"stock_id"`
	Lot       *StockLot  `gorm:"foreignKey:StockID;constraint:OnDelete:SET NULL" json:"-"`
	PO        string     `gorm:"size:100;index" json:"po"`
	Client    string     `gorm:"size:150" json:"client"`
	Product   string     `gorm:"size:255" json:"product"`
	Recipient string     `gorm:"size:150" json:"recipient"`
	Courier   string     `gorm:"size:100" json:"courier"`
	Tracking  string     `gorm:"size:100" json:"tracking"`
	DateSent  string     `gorm:"size:10;index" json:"date_sent"` // YYYY-MM-DD
	ImagePath *string    `gorm:"size:500" json:"image_path"`
	Qty       int        `gorm:"not null;default:1" json:"qty"`
	Size      string     `gorm:"size:50" json:"size"`
	Lifecycle Lifecycle  `gorm:"size:10;not null;default:active;index" json:"lifecycle"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

// Orphaned reports whether the owning stock lot was hard-deleted.
func (s Shipment) Orphaned() bool {
	return s.StockID == nil
}
