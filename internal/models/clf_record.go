package models

type CLFRecord struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TTXPO    string `gorm:"column:ttx_po;size:100;index" json:"ttx_po"`
	Batch    string `gorm:"size:100" json:"batch"`
	ClientPO string `gorm:"size:100" json:"client_po"`
}

func (CLFRecord) TableName() string {
	return "clf_records"
}
