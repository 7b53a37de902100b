package models

// MasterRecord: ERP tablosundan önbelleğe alınan ana veri satırı
type MasterRecord struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UsingPO     string `gorm:"size:100;index" json:"using_po"`
	Client      string `gorm:"size:150" json:"client"`
	ClientPO    string `gorm:"size:100" json:"client_po"`
	ProductName string `gorm:"size:255" json:"product_name"`
	ProductCode string `gorm:"size:100" json:"product_code"`
	QualityNote string `gorm:"size:500" json:"quality_note"`
}
